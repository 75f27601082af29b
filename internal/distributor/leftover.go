package distributor

import (
	"slices"

	"github.com/synthpop-dev/synthpop/internal/demography"
	"github.com/synthpop-dev/synthpop/internal/households"
)

// fillLeftovers drains everyone still in the pools into existing
// households. Bands are processed old people first, then young adults,
// then adults, then kids, so the most constrained placements happen
// while the candidate lists are still rich. Placement cascades from
// the band's own candidate list to any household with space to a
// uniformly random household, which may overfill.
func (r *run) fillLeftovers() {
	if r.men.Empty() && r.women.Empty() {
		return
	}

	var withSpace []*households.Household
	for _, h := range r.all {
		if h.HasSpace() {
			withSpace = append(withSpace, h)
		}
	}
	allLists := []*[]*households.Household{
		&withSpace,
		&r.lists.extraKids,
		&r.lists.withKids,
		&r.lists.extraYoungAdults,
		&r.lists.extraAdults,
		&r.lists.extraOld,
	}

	// Merge the sex pools per age and shuffle within each age so
	// neither sex is systematically placed first.
	merged := make(map[int][]*demography.Person)
	for _, p := range r.men.DrainInRange(0, ageCeiling) {
		merged[p.Age] = append(merged[p.Age], p)
	}
	for _, p := range r.women.DrainInRange(0, ageCeiling) {
		merged[p.Age] = append(merged[p.Age], p)
	}
	ages := make([]int, 0, len(merged))
	for age := range merged {
		ages = append(ages, age)
	}
	slices.Sort(ages)
	for _, age := range ages {
		group := merged[age]
		r.rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
	}

	bands := []struct {
		min, max int
		sg       households.Subgroup
	}{
		{r.cfg.OldMinAge, r.cfg.OldMaxAge, households.SubgroupOldAdults},
		{r.cfg.YoungAdultMinAge, r.cfg.YoungAdultMaxAge, households.SubgroupYoungAdults},
		{r.cfg.YoungAdultMaxAge + 1, r.cfg.AdultMaxAge, households.SubgroupAdults},
		{0, r.cfg.KidMaxAge, households.SubgroupKids},
	}
	for _, band := range bands {
		for _, age := range ages {
			if age < band.min || age > band.max {
				continue
			}
			for _, person := range merged[age] {
				h := r.pickCandidate(band.sg)
				if h == nil {
					h = r.pickRandomFrom(withSpace)
				}
				if h == nil {
					// Last resort: anyone, overfilling if needed.
					h = r.all[r.rng.Intn(len(r.all))]
				}
				h.Add(person, band.sg)
				if h.Size() >= min(h.MaxSize, r.cfg.MaxHouseholdSize) {
					removeFromAll(h, allLists)
				}
			}
		}
	}
}

// pickCandidate selects a household from the band's candidate lists.
// Kids additionally fall back to households that already contain kids.
func (r *run) pickCandidate(sg households.Subgroup) *households.Household {
	switch sg {
	case households.SubgroupOldAdults:
		return r.pickRandomFrom(r.lists.extraOld)
	case households.SubgroupYoungAdults:
		return r.pickRandomFrom(r.lists.extraYoungAdults)
	case households.SubgroupAdults:
		return r.pickRandomFrom(r.lists.extraAdults)
	case households.SubgroupKids:
		if h := r.pickOccupiedFrom(r.lists.extraKids); h != nil {
			return h
		}
		return r.pickRandomFrom(r.lists.withKids)
	}
	return nil
}

func (r *run) pickRandomFrom(list []*households.Household) *households.Household {
	if len(list) == 0 {
		return nil
	}
	return list[r.rng.Intn(len(list))]
}

// pickOccupiedFrom draws a random non-empty household from the list,
// so a lone leftover kid does not end up alone in an empty shell.
func (r *run) pickOccupiedFrom(list []*households.Household) *households.Household {
	occupied := make([]*households.Household, 0, len(list))
	for _, h := range list {
		if h.Size() > 0 {
			occupied = append(occupied, h)
		}
	}
	return r.pickRandomFrom(occupied)
}
