package distributor

import (
	"github.com/synthpop-dev/synthpop/internal/demography"
	"github.com/synthpop-dev/synthpop/internal/households"
)

// shellRemaining handles a pool shortfall mid-handler: the household
// that could not be seeded, plus one empty shell for every household
// the handler still owed, go onto the candidate lists so the leftover
// pass can use them. The census household count stays intact.
func (r *run) shellRemaining(current *households.Household, created, total int, mint func() *households.Household, lists []*[]*households.Household) {
	registerOn(current, lists)
	for i := created; i < total; i++ {
		registerOn(mint(), lists)
	}
}

// returnToPool puts a drawn person back into their sex pool.
func (r *run) returnToPool(p *demography.Person) {
	if p.Sex == demography.SexMale {
		r.men.Add(p)
	} else {
		r.women.Add(p)
	}
}

// popStudent draws a student-aged person, widening the bracket by ten
// years when the nominal one is exhausted.
func (r *run) popStudent() *demography.Person {
	s := r.randomInBracket(r.cfg.StudentMinAge, r.cfg.StudentMaxAge)
	if s == nil {
		s = r.randomInBracket(r.cfg.StudentMinAge, r.cfg.StudentMaxAge+10)
	}
	return s
}

// fillStudentHouseholds spreads the area's student count evenly over
// the requested number of unbounded student households.
func (r *run) fillStudentHouseholds(nStudents, houseCount int) {
	houses := make([]*households.Household, 0, houseCount)
	for i := 0; i < houseCount; i++ {
		houses = append(houses, r.newHousehold(households.TypeStudent, households.Unbounded, keyStudents))
	}
	if nStudents <= 0 {
		return
	}
	ratio := max(nStudents/houseCount, 1)
	left := nStudents
	for _, h := range houses {
		for i := 0; i < ratio && left > 0; i++ {
			s := r.popStudent()
			if s == nil {
				return
			}
			h.Add(s, households.SubgroupYoungAdults)
			left--
		}
	}
	// Remainder goes round-robin over the same houses.
	for i := 0; left > 0; i = (i + 1) % len(houses) {
		s := r.popStudent()
		if s == nil {
			return
		}
		houses[i].Add(s, households.SubgroupYoungAdults)
		left--
	}
}

// fillOldHouseholds builds households of old people only. With
// peoplePerHousehold of 2 the second resident is a partner matched to
// the first, constrained to the old bracket.
func (r *run) fillOldHouseholds(key string, peoplePerHousehold, houseCount, maxSize int, lists ...*[]*households.Household) {
	mint := func() *households.Household {
		return r.newHousehold(households.TypeOld, maxSize, key)
	}
	for i := 0; i < houseCount; i++ {
		h := mint()
		person := r.randomInBracket(r.cfg.OldMinAge, r.cfg.OldMaxAge)
		if person == nil {
			r.shellRemaining(h, i+1, houseCount, mint, lists)
			return
		}
		h.Add(person, households.SubgroupOldAdults)
		if peoplePerHousehold > 1 {
			if partner := r.matchingPartner(person, partnerOver65); partner != nil {
				h.Add(partner, households.SubgroupOldAdults)
			}
		}
		if h.HasSpace() {
			registerOn(h, lists)
		}
	}
}

// fillFamilyHouseholds builds family households around a seed kid. The
// kid anchors the parent match, the parent anchors the partner and
// sibling matches. When the kid pool is dry a young adult stands in
// for the kid; when neither pool yields anyone the remaining quota
// becomes empty shells for the leftover pass.
func (r *run) fillFamilyHouseholds(key string, kidsPer, parentsPer, oldPer, houseCount int, lists ...*[]*households.Household) error {
	mint := func() *households.Household {
		return r.newHousehold(households.TypeFamily, households.Unbounded, key)
	}
	for i := 0; i < houseCount; i++ {
		h := mint()

		firstKid := r.randomInBracket(0, r.cfg.KidMaxAge)
		kidSubgroup := households.SubgroupKids
		if firstKid == nil {
			firstKid = r.randomInBracket(r.cfg.YoungAdultMinAge, r.cfg.YoungAdultMaxAge)
			kidSubgroup = households.SubgroupYoungAdults
			if firstKid == nil {
				r.shellRemaining(h, i+1, houseCount, mint, lists)
				return nil
			}
		}

		firstParent := r.matchingParent(firstKid)
		if firstParent == nil {
			if !r.cfg.IgnoreOrphans {
				return households.Errorf(
					"area %s: no parent aged %d-%d available for kid aged %d",
					r.area.Name, r.cfg.AdultMinAge, r.cfg.MaxAgeToBeParent, firstKid.Age)
			}
			// The kid rejoins the pool for the leftover pass and the
			// remaining quota becomes shells.
			r.returnToPool(firstKid)
			r.shellRemaining(h, i+1, houseCount, mint, lists)
			return nil
		}
		h.Add(firstKid, kidSubgroup)
		h.Add(firstParent, households.SubgroupAdults)
		registerOn(h, lists)

		for j := 0; j < oldPer; j++ {
			old := r.randomInBracket(r.cfg.OldMinAge, r.cfg.OldMaxAge)
			if old == nil {
				break
			}
			h.Add(old, households.SubgroupOldAdults)
		}

		if parentsPer == 2 {
			if second := r.matchingPartner(firstParent, partnerAny); second != nil {
				h.Add(second, households.SubgroupAdults)
			}
		}

		if kidsPer == 2 {
			if second := r.matchingSecondKid(firstParent); second != nil {
				h.Add(second, households.SubgroupKids)
			} else if ya := r.randomInBracket(r.cfg.YoungAdultMinAge, r.cfg.YoungAdultMaxAge); ya != nil {
				h.Add(ya, households.SubgroupYoungAdults)
			}
		}
	}
	return nil
}

// fillNoKidsHouseholds builds adult-only households. Old people left
// over from the old-people handlers are drained first so they end up
// in size-capped homes rather than on the leftover pass.
func (r *run) fillNoKidsHouseholds(key string, adultsPer, houseCount, maxSize int, lists ...*[]*households.Household) error {
	for i := 0; i < houseCount; i++ {
		h := r.newHousehold(households.TypeNoKids, maxSize, key)

		var first *demography.Person
		if r.oldPeopleLeft() {
			first = r.randomInBracket(r.cfg.OldMinAge, r.cfg.OldMaxAge)
			if first == nil {
				return households.Errorf("area %s: old people reported in pool but none could be drawn", r.area.Name)
			}
		} else {
			first = r.randomInBracket(r.cfg.AdultMinAge, r.cfg.AdultMaxAge)
		}
		if first != nil {
			h.Add(first, households.SubgroupAdults)
			if adultsPer == 2 {
				if second := r.matchingPartner(first, partnerAny); second != nil {
					h.Add(second, households.SubgroupAdults)
				}
			}
		}
		if h.HasSpace() {
			registerOn(h, lists)
		}
	}
	return nil
}

func (r *run) oldPeopleLeft() bool {
	return r.men.AnyInRange(r.cfg.OldMinAge, r.cfg.OldMaxAge) ||
		r.women.AnyInRange(r.cfg.OldMinAge, r.cfg.OldMaxAge)
}

// fillYAWithParentsHouseholds builds households of grown-up children
// living with their parents. Every house goes on the candidate lists
// up front; any draw may come up short without failing the handler.
func (r *run) fillYAWithParentsHouseholds(key string, adultsPer, houseCount int, lists ...*[]*households.Household) {
	for i := 0; i < houseCount; i++ {
		h := r.newHousehold(households.TypeYAParents, households.Unbounded, key)
		registerOn(h, lists)

		ya := r.randomInBracket(r.cfg.YoungAdultMinAge, r.cfg.YoungAdultMaxAge)
		if ya != nil {
			h.Add(ya, households.SubgroupYoungAdults)
		}
		for j := 0; j < adultsPer; j++ {
			var adult *demography.Person
			if ya != nil {
				// A parent must plausibly predate the child.
				adult = r.randomInBracket(ya.Age+r.cfg.AdultMinAge, r.cfg.AdultMaxAge)
			} else {
				adult = r.randomInBracket(r.cfg.AdultMinAge, r.cfg.AdultMaxAge)
			}
			if adult != nil {
				h.Add(adult, households.SubgroupAdults)
			}
		}
	}
}

// fillOtherHouseholds creates catch-all shells that accept anyone in
// the leftover pass.
func (r *run) fillOtherHouseholds(houseCount int) {
	for i := 0; i < houseCount; i++ {
		h := r.newHousehold(households.TypeOther, households.Unbounded, keyOther)
		registerOn(h, []*[]*households.Household{
			&r.lists.extraYoungAdults,
			&r.lists.extraAdults,
			&r.lists.extraOld,
		})
	}
}

// fillCommunalEstablishments places nPeople residents into the
// requested number of communal establishments: one adult seed per
// establishment, an even share of any-age residents on top, and the
// remainder round-robin. When no establishments could be seeded an
// ad-hoc one takes anyone of working age or older.
func (r *run) fillCommunalEstablishments(nEstablishments, nPeople int) {
	if nPeople <= 0 {
		return
	}
	ratio := max(nPeople/nEstablishments, 1)
	left := nPeople
	var houses []*households.Household
	for e := 0; e < nEstablishments && left > 0; e++ {
		seed := r.randomInBracket(r.cfg.AdultMinAge, ageCeiling)
		if seed == nil {
			break
		}
		h := r.newHousehold(households.TypeCommunal, households.Unbounded, keyCommunal)
		houses = append(houses, h)
		h.Add(seed, households.SubgroupAdults)
		left--
		for i := 1; i < ratio && left > 0; i++ {
			p := r.randomInBracket(0, ageCeiling)
			if p == nil {
				return
			}
			h.Add(p, households.SubgroupAdults)
			left--
		}
	}
	for i := 0; left > 0; {
		if len(houses) == 0 {
			p := r.randomInBracket(r.cfg.CommunalMinAge, ageCeiling)
			if p == nil {
				return
			}
			h := r.newHousehold(households.TypeCommunal, households.Unbounded, keyCommunal)
			houses = append(houses, h)
			h.Add(p, households.SubgroupAdults)
			left--
			continue
		}
		p := r.randomInBracket(0, ageCeiling)
		if p == nil {
			return
		}
		houses[i].Add(p, households.SubgroupAdults)
		left--
		i = (i + 1) % len(houses)
	}
}
