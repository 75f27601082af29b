package distributor

import (
	"github.com/synthpop-dev/synthpop/internal/demography"
	"github.com/synthpop-dev/synthpop/internal/pool"
)

// ageCeiling bounds open-ended age searches.
const ageCeiling = 99

// partnerConstraint steers the target age of a partner match.
type partnerConstraint uint8

const (
	partnerAny partnerConstraint = iota
	partnerOver65
	partnerUnder65
)

// randomInBracket draws a person of uniform target age within
// [minAge, maxAge]. A coin flip chooses which sex pool to search
// first; if that pool has nobody in range the other is tried. Returns
// nil when neither pool has anyone in range.
func (r *run) randomInBracket(minAge, maxAge int) *demography.Person {
	if maxAge < minAge {
		return nil
	}
	target := minAge + r.rng.Intn(maxAge-minAge+1)
	if r.sexBatch.Pop() == int(demography.SexMale) {
		return pool.ClosestOfAge(r.men, r.women, target, minAge, maxAge)
	}
	return pool.ClosestOfAge(r.women, r.men, target, minAge, maxAge)
}

// matchingPartner finds an opposite-sex partner for p, aged p's age
// plus a sampled couple age gap, clamped to the adult range.
func (r *run) matchingPartner(p *demography.Person, constraint partnerConstraint) *demography.Person {
	diff := r.couplesBatch.Pop()
	target := p.Age + diff
	switch constraint {
	case partnerUnder65:
		target = min(p.Age-abs(diff), r.cfg.OldMinAge-1)
	case partnerOver65:
		target = max(r.cfg.OldMinAge, target)
	}
	target = max(min(target, r.cfg.OldMaxAge), r.cfg.AdultMinAge)
	if p.Sex == demography.SexFemale {
		return pool.ClosestOfAge(r.men, r.women, target, r.cfg.AdultMinAge, ageCeiling)
	}
	return pool.ClosestOfAge(r.women, r.men, target, r.cfg.AdultMinAge, ageCeiling)
}

// matchingParent finds a parent for kid, preferring women, aged the
// kid's age plus a sampled parent-child gap, within parenting range.
func (r *run) matchingParent(kid *demography.Person) *demography.Person {
	diff := r.firstKidBatch.Pop()
	target := max(min(kid.Age+diff, r.cfg.MaxAgeToBeParent), r.cfg.AdultMinAge)
	return pool.ClosestOfAge(r.women, r.men, target, r.cfg.AdultMinAge, r.cfg.MaxAgeToBeParent)
}

// matchingSecondKid finds a sibling for a family, aged the parent's
// age minus a sampled gap. The sex pool whose nearest candidate age
// compares lower under signed distance is searched first.
func (r *run) matchingSecondKid(parent *demography.Person) *demography.Person {
	diff := r.secondKidBatch.Pop()
	target := max(min(parent.Age-diff, r.cfg.KidMaxAge), 0)
	const far = 1 << 30
	distMale, distFemale := far, far
	if age, ok := r.men.NearestAge(target); ok {
		distMale = age - target
	}
	if age, ok := r.women.NearestAge(target); ok {
		distFemale = age - target
	}
	if distMale < distFemale {
		return pool.ClosestOfAge(r.men, r.women, target, 0, r.cfg.KidMaxAge)
	}
	return pool.ClosestOfAge(r.women, r.men, target, 0, r.cfg.KidMaxAge)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
