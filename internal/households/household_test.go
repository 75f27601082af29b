package households

import (
	"testing"

	"github.com/synthpop-dev/synthpop/internal/demography"
)

func TestAddSetsResidency(t *testing.T) {
	h := &Household{ID: 7, MaxSize: 2, Type: TypeNoKids}
	p := &demography.Person{ID: 1, Age: 30}
	h.Add(p, SubgroupAdults)
	if !p.Assigned() {
		t.Fatal("person should be marked resident")
	}
	if *p.HouseholdID != 7 {
		t.Errorf("expected household 7, got %d", *p.HouseholdID)
	}
	if got := h.Subgroup(SubgroupAdults); len(got) != 1 || got[0] != p {
		t.Errorf("adults subgroup wrong: %v", got)
	}
}

func TestSizeAndHasSpace(t *testing.T) {
	h := &Household{MaxSize: 2}
	if h.Size() != 0 || !h.HasSpace() {
		t.Error("empty household should have space")
	}
	h.Add(&demography.Person{Age: 5}, SubgroupKids)
	h.Add(&demography.Person{Age: 40}, SubgroupAdults)
	if h.Size() != 2 {
		t.Errorf("expected size 2, got %d", h.Size())
	}
	if h.HasSpace() {
		t.Error("full household should not have space")
	}
}

func TestUnboundedAlwaysHasSpace(t *testing.T) {
	h := &Household{MaxSize: Unbounded}
	for i := 0; i < 50; i++ {
		h.Add(&demography.Person{Age: 20}, SubgroupYoungAdults)
	}
	if !h.HasSpace() {
		t.Error("unbounded household should always have space")
	}
}

func TestPeopleSubgroupOrder(t *testing.T) {
	h := &Household{MaxSize: Unbounded}
	kid := &demography.Person{Age: 3}
	adult := &demography.Person{Age: 40}
	old := &demography.Person{Age: 80}
	h.Add(old, SubgroupOldAdults)
	h.Add(adult, SubgroupAdults)
	h.Add(kid, SubgroupKids)
	got := h.People()
	if len(got) != 3 || got[0] != kid || got[1] != adult || got[2] != old {
		t.Errorf("expected kids before adults before old, got %v", got)
	}
}

func TestHouseholdsTotals(t *testing.T) {
	a := &Household{MaxSize: Unbounded}
	a.Add(&demography.Person{Age: 10}, SubgroupKids)
	b := &Household{MaxSize: Unbounded}
	b.Add(&demography.Person{Age: 30}, SubgroupAdults)
	b.Add(&demography.Person{Age: 31}, SubgroupAdults)

	hs := Households{a}.Concat(Households{b})
	if len(hs) != 2 {
		t.Fatalf("expected 2 households, got %d", len(hs))
	}
	if got := hs.TotalPeople(); got != 3 {
		t.Errorf("expected 3 people, got %d", got)
	}
}

func TestTypeValid(t *testing.T) {
	for _, typ := range []Type{TypeFamily, TypeStudent, TypeCommunal, TypeOld,
		TypeNoKids, TypeYoungAdults, TypeYAParents, TypeOther} {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if Type("mansion").Valid() {
		t.Error("unknown type should be invalid")
	}
}
