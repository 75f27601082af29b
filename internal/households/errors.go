package households

import "fmt"

// Error is raised for household distribution failures: unrecognized
// composition keys, empty areas, orphaned kids, and count mismatches.
type Error string

func (e Error) Error() string { return string(e) }

// Errorf formats a household Error.
func Errorf(format string, args ...any) Error {
	return Error(fmt.Sprintf(format, args...))
}
