// Package demography provides the person data model consumed by the
// household distributor, plus a seeded synthetic population generator.
package demography

// PersonID is a unique identifier for a person.
type PersonID uint64

// Sex represents biological sex for demographic simulation.
type Sex uint8

const (
	SexMale   Sex = 0
	SexFemale Sex = 1
)

// String returns the display string for the sex.
func (s Sex) String() string {
	switch s {
	case SexMale:
		return "male"
	case SexFemale:
		return "female"
	default:
		return "unknown"
	}
}

// Opposite returns the other sex.
func (s Sex) Opposite() Sex {
	if s == SexMale {
		return SexFemale
	}
	return SexMale
}

// Person is an individual to be assigned to a household. The distributor
// never creates people, it only assigns existing ones.
type Person struct {
	ID  PersonID `json:"id"`
	Age int      `json:"age"`
	Sex Sex      `json:"sex"`

	// HouseholdID is set once the person has been placed. A nil value
	// marks the person as unassigned.
	HouseholdID *uint64 `json:"household_id,omitempty"`
}

// Assigned reports whether the person already lives somewhere.
func (p *Person) Assigned() bool {
	return p.HouseholdID != nil
}
