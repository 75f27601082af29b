// Package households provides the household container populated by the
// distributor: a typed group with four role subgroups and an optional
// occupancy cap.
package households

import (
	"math"

	"github.com/synthpop-dev/synthpop/internal/demography"
)

// Type classifies a household by the census composition that created it.
type Type string

const (
	TypeFamily      Type = "family"
	TypeStudent     Type = "student"
	TypeCommunal    Type = "communal"
	TypeOld         Type = "old"
	TypeNoKids      Type = "nokids"
	TypeYoungAdults Type = "youngadults"
	TypeYAParents   Type = "ya_parents"
	TypeOther       Type = "other"
)

// Valid returns true if the household type is a recognized value.
func (t Type) Valid() bool {
	switch t {
	case TypeFamily, TypeStudent, TypeCommunal, TypeOld,
		TypeNoKids, TypeYoungAdults, TypeYAParents, TypeOther:
		return true
	default:
		return false
	}
}

// Subgroup identifies the role a resident holds inside a household.
type Subgroup uint8

const (
	SubgroupKids Subgroup = iota
	SubgroupYoungAdults
	SubgroupAdults
	SubgroupOldAdults

	numSubgroups
)

// String returns the display string for the subgroup.
func (s Subgroup) String() string {
	switch s {
	case SubgroupKids:
		return "kids"
	case SubgroupYoungAdults:
		return "young_adults"
	case SubgroupAdults:
		return "adults"
	case SubgroupOldAdults:
		return "old_adults"
	default:
		return "unknown"
	}
}

// Unbounded marks a household with no occupancy cap.
const Unbounded = math.MaxInt

// Household holds the people assigned to one dwelling, split into role
// subgroups. It is created empty by the distributor's factory and
// populated incrementally; after the area's distribution completes it
// is not mutated further.
type Household struct {
	ID       uint64 `json:"id"`
	AreaName string `json:"area"`
	Type     Type   `json:"type"`

	// Composition is the census composition key the household was
	// created for, retained for diagnostics. Empty for ad-hoc
	// households created by fallback paths.
	Composition string `json:"composition,omitempty"`

	// MaxSize is the occupancy cap, or Unbounded.
	MaxSize int `json:"max_size"`

	subgroups [numSubgroups][]*demography.Person
}

// Add places a person in the given subgroup and marks them resident.
func (h *Household) Add(p *demography.Person, sg Subgroup) {
	h.subgroups[sg] = append(h.subgroups[sg], p)
	id := h.ID
	p.HouseholdID = &id
}

// Size returns the number of residents across all subgroups.
func (h *Household) Size() int {
	n := 0
	for _, sg := range h.subgroups {
		n += len(sg)
	}
	return n
}

// HasSpace reports whether the household is below its own cap.
func (h *Household) HasSpace() bool {
	return h.Size() < h.MaxSize
}

// Subgroup returns the residents holding the given role.
func (h *Household) Subgroup(sg Subgroup) []*demography.Person {
	return h.subgroups[sg]
}

// People returns all residents in subgroup order.
func (h *Household) People() []*demography.Person {
	people := make([]*demography.Person, 0, h.Size())
	for _, sg := range h.subgroups {
		people = append(people, sg...)
	}
	return people
}

// Households is an ordered collection of households.
type Households []*Household

// Concat appends the members of other and returns the combined list.
func (hs Households) Concat(other Households) Households {
	return append(hs, other...)
}

// TotalPeople returns the number of residents across all households.
func (hs Households) TotalPeople() int {
	n := 0
	for _, h := range hs {
		n += h.Size()
	}
	return n
}
