// Package geography provides the area unit the distributor operates on.
// An area owns its people before distribution and its households after.
package geography

import (
	"github.com/synthpop-dev/synthpop/internal/demography"
	"github.com/synthpop-dev/synthpop/internal/households"
)

// Area is one census output area. The distributor consumes
// area.People and attaches the result to area.Households.
type Area struct {
	Name       string
	People     []*demography.Person
	Households households.Households
}

// Population returns the number of people in the area.
func (a *Area) Population() int {
	return len(a.People)
}

// Unassigned returns the people not yet resident in any household.
func (a *Area) Unassigned() []*demography.Person {
	var out []*demography.Person
	for _, p := range a.People {
		if !p.Assigned() {
			out = append(out, p)
		}
	}
	return out
}
