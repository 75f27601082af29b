// Package distributor implements the household population engine: it
// takes per-area census aggregates and assigns every person in the
// area to a specific household with a specific role, honoring the
// aggregate counts exactly and demographic plausibility approximately.
package distributor

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/synthpop-dev/synthpop/internal/census"
	"github.com/synthpop-dev/synthpop/internal/config"
	"github.com/synthpop-dev/synthpop/internal/geography"
	"github.com/synthpop-dev/synthpop/internal/households"
	"github.com/synthpop-dev/synthpop/internal/pool"
	"github.com/synthpop-dev/synthpop/internal/sampler"
)

// The recognized composition keys, in handler priority order. Earlier
// handlers deplete the shared pools that later handlers draw from, so
// the order is load-bearing.
const (
	keyStudents            = "0 >=1 0 0 0"
	keyOldSingle           = "0 0 0 0 1"
	keyOldCouple           = "0 0 0 0 2"
	keyOldUnbounded        = "0 0 0 0 >=2"
	keyMultigenOneKid      = "1 0 >=0 >=1 >=0"
	keyMultigenTwoKids     = ">=2 0 >=0 >=1 >=0"
	keySingleParentOneKid  = "1 0 >=0 1 0"
	keySingleParentTwoKids = ">=2 0 >=0 1 0"
	keyTwoParentsOneKid    = "1 0 >=0 2 0"
	keyTwoParentsTwoKids   = ">=2 0 >=0 2 0"
	keyAdultCouple         = "0 0 0 2 0"
	keyYAOneParent         = "0 0 >=1 1 0"
	keyYATwoParents        = "0 0 >=1 2 0"
	keySingleAdult         = "0 0 0 1 0"
	keyOther               = "0 0 >=0 >=0 >=0"
	keyCommunal            = ">=0 >=0 >=0 >=0 >=0"
)

// Distributor assigns people to households area by area. It is safe
// for concurrent use across areas: all per-area state lives in the
// run, and callers supply the area's RNG.
type Distributor struct {
	cfg     config.Config
	allowed map[string]census.Composition

	firstKid  *sampler.Discrete
	secondKid *sampler.Discrete
	couples   *sampler.Discrete
	sexCoin   *sampler.Discrete

	nextID atomic.Uint64
}

// New builds a distributor from the given configuration.
func New(cfg config.Config) (*Distributor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("distributor config: %w", err)
	}
	allowed := make(map[string]census.Composition, len(cfg.AllowedCompositions))
	for _, key := range cfg.AllowedCompositions {
		comp, err := census.ParseComposition(key)
		if err != nil {
			return nil, err
		}
		allowed[key] = comp
	}
	firstKid, err := sampler.NewDiscrete(cfg.FirstKidParentAgeDiffs)
	if err != nil {
		return nil, fmt.Errorf("first kid age differences: %w", err)
	}
	secondKid, err := sampler.NewDiscrete(cfg.SecondKidParentAgeDiffs)
	if err != nil {
		return nil, fmt.Errorf("second kid age differences: %w", err)
	}
	couples, err := sampler.NewDiscrete(cfg.CouplesAgeDiffs)
	if err != nil {
		return nil, fmt.Errorf("couples age differences: %w", err)
	}
	return &Distributor{
		cfg:       cfg,
		allowed:   allowed,
		firstKid:  firstKid,
		secondKid: secondKid,
		couples:   couples,
		sexCoin:   sampler.SexCoin(),
	}, nil
}

// Config returns the distributor's configuration.
func (d *Distributor) Config() config.Config {
	return d.cfg
}

// run holds the mutable state of one area's distribution.
type run struct {
	d   *Distributor
	cfg config.Config
	rng *rand.Rand

	area       *geography.Area
	men, women *pool.AgeIndexed

	// Pre-drawn sample batches, sized to the area population.
	couplesBatch   *sampler.Batch
	firstKidBatch  *sampler.Batch
	secondKidBatch *sampler.Batch
	sexBatch       *sampler.Batch

	lists candidates
	all   households.Households
}

// Distribute assigns every unassigned person in the area to a
// household according to the census aggregates, attaches the resulting
// households to the area, and returns them. Randomness comes only from
// rng, so a fixed seed reproduces the assignment exactly.
func (d *Distributor) Distribute(rng *rand.Rand, area *geography.Area, data census.AreaData) (households.Households, error) {
	// Validate the requested compositions before touching any state.
	totalRequested := 0
	for key, n := range data.Households {
		if n < 0 {
			return nil, households.Errorf("area %s: negative household count %d for composition %q", area.Name, n, key)
		}
		if _, ok := d.allowed[key]; !ok {
			return nil, households.Errorf("household composition %q not supported", key)
		}
		totalRequested += n
	}
	if totalRequested == 0 {
		return nil, households.Errorf("area %s: census row requests no households", area.Name)
	}

	men, women := pool.BySex(area.People)
	if men.Empty() && women.Empty() {
		return nil, households.Errorf("no people in area %s", area.Name)
	}
	totalPeople := men.Len() + women.Len()

	r := &run{
		d:              d,
		cfg:            d.cfg,
		rng:            rng,
		area:           area,
		men:            men,
		women:          women,
		couplesBatch:   d.couples.Draw(rng, totalPeople),
		firstKidBatch:  d.firstKid.Draw(rng, totalPeople),
		secondKidBatch: d.secondKid.Draw(rng, totalPeople),
		sexBatch:       d.sexCoin.Draw(rng, 2*totalPeople),
	}

	if err := r.compose(data); err != nil {
		return nil, err
	}

	communalCount := data.Households[keyCommunal]
	if communalCount > 0 {
		remaining := r.men.Len() + r.women.Len()
		r.fillCommunalEstablishments(communalCount, min(data.Communal, remaining))
	}

	r.fillLeftovers()

	// The only category allowed to under-deliver is communal.
	if built := len(r.all); built < totalRequested-communalCount || built > totalRequested {
		return nil, households.Errorf(
			"area %s: built %d households, want between %d and %d",
			area.Name, built, totalRequested-communalCount, totalRequested)
	}
	if placed := r.all.TotalPeople(); placed != totalPeople {
		panic(fmt.Sprintf("distributor: area %s placed %d of %d people", area.Name, placed, totalPeople))
	}

	// Households that stayed empty through every pass are discarded.
	final := make(households.Households, 0, len(r.all))
	for _, h := range r.all {
		if h.Size() > 0 {
			final = append(final, h)
		}
	}
	area.Households = final
	return final, nil
}

// compose runs the composition handlers in priority order for every
// key present in the census row.
func (r *run) compose(data census.AreaData) error {
	count := func(key string) int { return data.Households[key] }

	if n := count(keyStudents); n > 0 {
		r.fillStudentHouseholds(data.Students, n)
	}
	if n := count(keyOldSingle); n > 0 {
		r.fillOldHouseholds(keyOldSingle, 1, n, 1,
			&r.lists.extraAdults, &r.lists.extraOld)
	}
	if n := count(keyOldCouple); n > 0 {
		r.fillOldHouseholds(keyOldCouple, 2, n, 2,
			&r.lists.extraAdults, &r.lists.extraOld)
	}
	if n := count(keyOldUnbounded); n > 0 {
		r.fillOldHouseholds(keyOldUnbounded, 2, n, households.Unbounded,
			&r.lists.extraOld)
	}
	if n := count(keyMultigenOneKid); n > 0 {
		if err := r.fillFamilyHouseholds(keyMultigenOneKid, 1, 1, 1, n,
			&r.lists.withKids, &r.lists.extraYoungAdults, &r.lists.extraAdults); err != nil {
			return err
		}
	}
	if n := count(keyMultigenTwoKids); n > 0 {
		if err := r.fillFamilyHouseholds(keyMultigenTwoKids, 2, 1, 1, n,
			&r.lists.extraKids, &r.lists.withKids, &r.lists.extraYoungAdults, &r.lists.extraAdults); err != nil {
			return err
		}
	}
	if n := count(keySingleParentOneKid); n > 0 {
		if err := r.fillFamilyHouseholds(keySingleParentOneKid, 1, 1, 0, n,
			&r.lists.withKids, &r.lists.extraYoungAdults); err != nil {
			return err
		}
	}
	if n := count(keySingleParentTwoKids); n > 0 {
		if err := r.fillFamilyHouseholds(keySingleParentTwoKids, 2, 1, 0, n,
			&r.lists.extraKids, &r.lists.withKids, &r.lists.extraYoungAdults); err != nil {
			return err
		}
	}
	if n := count(keyTwoParentsOneKid); n > 0 {
		if err := r.fillFamilyHouseholds(keyTwoParentsOneKid, 1, 2, 0, n,
			&r.lists.withKids, &r.lists.extraYoungAdults); err != nil {
			return err
		}
	}
	if n := count(keyTwoParentsTwoKids); n > 0 {
		if err := r.fillFamilyHouseholds(keyTwoParentsTwoKids, 2, 2, 0, n,
			&r.lists.withKids, &r.lists.extraKids, &r.lists.extraYoungAdults); err != nil {
			return err
		}
	}
	if n := count(keyAdultCouple); n > 0 {
		if err := r.fillNoKidsHouseholds(keyAdultCouple, 2, n, 2,
			&r.lists.extraAdults, &r.lists.extraOld); err != nil {
			return err
		}
	}
	if n := count(keyYAOneParent); n > 0 {
		r.fillYAWithParentsHouseholds(keyYAOneParent, 1, n,
			&r.lists.extraYoungAdults)
	}
	if n := count(keyYATwoParents); n > 0 {
		r.fillYAWithParentsHouseholds(keyYATwoParents, 2, n,
			&r.lists.extraYoungAdults)
	}
	if n := count(keySingleAdult); n > 0 {
		if err := r.fillNoKidsHouseholds(keySingleAdult, 1, n, 1); err != nil {
			return err
		}
	}
	if n := count(keyOther); n > 0 {
		r.fillOtherHouseholds(n)
	}
	return nil
}

// newHousehold mints an empty household and records it in the run.
func (r *run) newHousehold(t households.Type, maxSize int, key string) *households.Household {
	h := &households.Household{
		ID:          r.d.nextID.Add(1),
		AreaName:    r.area.Name,
		Type:        t,
		Composition: key,
		MaxSize:     maxSize,
	}
	r.all = append(r.all, h)
	return h
}
