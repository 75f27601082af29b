// Package census provides the household composition grammar and the
// per-area census aggregates consumed by the distributor.
package census

import (
	"strconv"
	"strings"

	"github.com/synthpop-dev/synthpop/internal/households"
)

// Field is one slot of a composition key: an occupant count that is
// either exact or a lower bound.
type Field struct {
	N       int
	AtLeast bool
}

// Matches reports whether a count satisfies this field.
func (f Field) Matches(n int) bool {
	if f.AtLeast {
		return n >= f.N
	}
	return n == f.N
}

func (f Field) String() string {
	if f.AtLeast {
		return ">=" + strconv.Itoa(f.N)
	}
	return strconv.Itoa(f.N)
}

// Composition is a parsed household composition key. Keys encode five
// counts in the order kids, students, young adults, adults, old adults,
// e.g. "1 0 >=0 2 0" is exactly one kid, no students, any number of
// young adults, two adults, and no old people.
type Composition struct {
	Kids        Field
	Students    Field
	YoungAdults Field
	Adults      Field
	OldAdults   Field

	// Key is the original census label.
	Key string
}

// ParseComposition parses a composition key string. The grammar is five
// whitespace-separated fields, each a non-negative integer with an
// optional ">=" prefix.
func ParseComposition(key string) (Composition, error) {
	parts := strings.Fields(key)
	if len(parts) != 5 {
		return Composition{}, households.Errorf("composition %q: want 5 fields, got %d", key, len(parts))
	}
	var fields [5]Field
	for i, part := range parts {
		f, err := parseField(part)
		if err != nil {
			return Composition{}, households.Errorf("composition %q: %v", key, err)
		}
		fields[i] = f
	}
	return Composition{
		Kids:        fields[0],
		Students:    fields[1],
		YoungAdults: fields[2],
		Adults:      fields[3],
		OldAdults:   fields[4],
		Key:         key,
	}, nil
}

func parseField(s string) (Field, error) {
	atLeast := false
	if rest, ok := strings.CutPrefix(s, ">="); ok {
		atLeast = true
		s = rest
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Field{}, households.Errorf("bad count %q", s)
	}
	return Field{N: n, AtLeast: atLeast}, nil
}

// DefaultAllowedCompositions is the recognized composition key set, in
// no particular order. The distributor rejects any key outside the
// configured set.
func DefaultAllowedCompositions() []string {
	return []string{
		"0 0 0 0 1",
		"0 0 0 1 0",
		"0 0 0 0 2",
		"0 0 0 2 0",
		"1 0 >=0 2 0",
		">=2 0 >=0 2 0",
		"0 0 >=1 2 0",
		"1 0 >=0 1 0",
		">=2 0 >=0 1 0",
		"0 0 >=1 1 0",
		"1 0 >=0 >=1 >=0",
		">=2 0 >=0 >=1 >=0",
		"0 >=1 0 0 0",
		"0 0 0 0 >=2",
		"0 0 >=0 >=0 >=0",
		">=0 >=0 >=0 >=0 >=0",
	}
}
