// Package pool implements the per-sex, per-area mutable pools of
// unassigned people indexed by age, with nearest-age lookup. A pool is
// owned exclusively by one area's distribution call.
package pool

import (
	"slices"
	"sort"

	"github.com/synthpop-dev/synthpop/internal/demography"
)

// AgeIndexed maps ages to stacks of available people of one sex. Ages
// with no remaining people are removed from the index immediately, so
// range queries never see a phantom age with zero candidates.
type AgeIndexed struct {
	ages  []int // sorted occupied ages
	byAge map[int][]*demography.Person
	count int
}

// New creates an empty pool.
func New() *AgeIndexed {
	return &AgeIndexed{byAge: make(map[int][]*demography.Person)}
}

// BySex splits unassigned people into a men's pool and a women's pool.
func BySex(people []*demography.Person) (men, women *AgeIndexed) {
	men, women = New(), New()
	for _, p := range people {
		if p.Assigned() {
			continue
		}
		if p.Sex == demography.SexMale {
			men.Add(p)
		} else {
			women.Add(p)
		}
	}
	return men, women
}

// Add puts a person into the pool.
func (a *AgeIndexed) Add(p *demography.Person) {
	if _, ok := a.byAge[p.Age]; !ok {
		i := sort.SearchInts(a.ages, p.Age)
		a.ages = slices.Insert(a.ages, i, p.Age)
	}
	a.byAge[p.Age] = append(a.byAge[p.Age], p)
	a.count++
}

// Len returns the number of people remaining in the pool.
func (a *AgeIndexed) Len() int {
	return a.count
}

// Empty reports whether no people remain.
func (a *AgeIndexed) Empty() bool {
	return a.count == 0
}

// Ages returns the occupied ages in ascending order. The returned
// slice is the pool's own index and must not be mutated.
func (a *AgeIndexed) Ages() []int {
	return a.ages
}

// AnyInRange reports whether any occupied age lies in [minAge, maxAge].
func (a *AgeIndexed) AnyInRange(minAge, maxAge int) bool {
	i := sort.SearchInts(a.ages, minAge)
	return i < len(a.ages) && a.ages[i] <= maxAge
}

// NearestAge returns the occupied age closest to target across the
// whole pool, ties resolving to the lower age. ok is false when the
// pool is empty.
func (a *AgeIndexed) NearestAge(target int) (age int, ok bool) {
	return a.nearestInRange(target, 0, 1<<30)
}

// nearestInRange finds the occupied age in [minAge, maxAge] closest to
// target. Equidistant candidates resolve to the lower age.
func (a *AgeIndexed) nearestInRange(target, minAge, maxAge int) (int, bool) {
	lo := sort.SearchInts(a.ages, minAge)
	hi := sort.SearchInts(a.ages, maxAge+1)
	if lo >= hi {
		return 0, false
	}
	i := sort.SearchInts(a.ages, target)
	if i >= hi {
		i = hi - 1
	}
	if i < lo {
		i = lo
	}
	best := a.ages[i]
	if i > lo && a.ages[i-1] >= minAge {
		lower := a.ages[i-1]
		// The lower age wins ties.
		if target-lower <= abs(best-target) {
			best = lower
		}
	}
	return best, true
}

// PopNearestInRange removes and returns a person whose age is closest
// to target among occupied ages in [minAge, maxAge]. The target itself
// must lie inside the range; otherwise, and when no candidate exists,
// it returns nil. Removal within an age is LIFO.
func (a *AgeIndexed) PopNearestInRange(target, minAge, maxAge int) *demography.Person {
	if target < minAge || target > maxAge {
		return nil
	}
	age, ok := a.nearestInRange(target, minAge, maxAge)
	if !ok {
		return nil
	}
	return a.popAt(age)
}

// PopNearest removes and returns a person of the age closest to
// target, or nil if the pool is empty.
func (a *AgeIndexed) PopNearest(target int) *demography.Person {
	age, ok := a.NearestAge(target)
	if !ok {
		return nil
	}
	return a.popAt(age)
}

func (a *AgeIndexed) popAt(age int) *demography.Person {
	people := a.byAge[age]
	p := people[len(people)-1]
	people = people[:len(people)-1]
	if len(people) == 0 {
		delete(a.byAge, age)
		i := sort.SearchInts(a.ages, age)
		a.ages = slices.Delete(a.ages, i, i+1)
	} else {
		a.byAge[age] = people
	}
	a.count--
	return p
}

// DrainInRange removes and returns everyone with an age in
// [minAge, maxAge], in ascending age order.
func (a *AgeIndexed) DrainInRange(minAge, maxAge int) []*demography.Person {
	var out []*demography.Person
	for {
		i := sort.SearchInts(a.ages, minAge)
		if i >= len(a.ages) || a.ages[i] > maxAge {
			return out
		}
		age := a.ages[i]
		out = append(out, a.byAge[age]...)
		a.count -= len(a.byAge[age])
		delete(a.byAge, age)
		a.ages = slices.Delete(a.ages, i, i+1)
	}
}

// ClosestOfAge pops the person nearest to target within
// [minAge, maxAge], preferring the primary pool and falling back to
// the secondary. It returns nil when neither pool has a candidate in
// range.
func ClosestOfAge(primary, secondary *AgeIndexed, target, minAge, maxAge int) *demography.Person {
	if p := primary.PopNearestInRange(target, minAge, maxAge); p != nil {
		return p
	}
	return secondary.PopNearestInRange(target, minAge, maxAge)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
