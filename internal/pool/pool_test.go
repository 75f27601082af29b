package pool

import (
	"testing"

	"github.com/synthpop-dev/synthpop/internal/demography"
)

func person(id uint64, age int, sex demography.Sex) *demography.Person {
	return &demography.Person{ID: demography.PersonID(id), Age: age, Sex: sex}
}

func poolOf(ages ...int) *AgeIndexed {
	p := New()
	for i, age := range ages {
		p.Add(person(uint64(i+1), age, demography.SexMale))
	}
	return p
}

func TestBySexPartitions(t *testing.T) {
	people := []*demography.Person{
		person(1, 10, demography.SexMale),
		person(2, 20, demography.SexFemale),
		person(3, 30, demography.SexMale),
	}
	men, women := BySex(people)
	if men.Len() != 2 || women.Len() != 1 {
		t.Errorf("expected 2 men and 1 woman, got %d and %d", men.Len(), women.Len())
	}
}

func TestNearestAgeExact(t *testing.T) {
	p := poolOf(10, 20, 30)
	age, ok := p.NearestAge(20)
	if !ok || age != 20 {
		t.Errorf("expected 20, got %d (ok=%v)", age, ok)
	}
}

func TestNearestAgeTieGoesLower(t *testing.T) {
	p := poolOf(18, 22)
	age, ok := p.NearestAge(20)
	if !ok || age != 18 {
		t.Errorf("expected tie to resolve to 18, got %d (ok=%v)", age, ok)
	}
}

func TestPopNearestInRangeRespectsBounds(t *testing.T) {
	p := poolOf(10, 50)
	if got := p.PopNearestInRange(30, 0, 17); got == nil || got.Age != 10 {
		t.Errorf("expected age 10, got %v", got)
	}
	// Nobody left in range.
	if got := p.PopNearestInRange(15, 0, 17); got != nil {
		t.Errorf("expected nil, got person aged %d", got.Age)
	}
}

func TestPopNearestOutsideOccupiedSpan(t *testing.T) {
	p := poolOf(40)
	if got := p.PopNearest(90); got == nil || got.Age != 40 {
		t.Errorf("expected the only person, got %v", got)
	}
}

func TestPopDrainsAgeKey(t *testing.T) {
	p := poolOf(25)
	if got := p.PopNearest(25); got == nil {
		t.Fatal("expected a person")
	}
	if !p.Empty() {
		t.Errorf("expected empty pool, len=%d", p.Len())
	}
	if got := p.PopNearest(25); got != nil {
		t.Errorf("expected nil from empty pool, got person aged %d", got.Age)
	}
}

func TestPopIsLIFOWithinAge(t *testing.T) {
	p := New()
	p.Add(person(1, 30, demography.SexMale))
	p.Add(person(2, 30, demography.SexMale))
	got := p.PopNearest(30)
	if got == nil || got.ID != 2 {
		t.Errorf("expected most recently added person 2, got %v", got)
	}
}

func TestAnyInRange(t *testing.T) {
	p := poolOf(5, 70)
	if !p.AnyInRange(65, 99) {
		t.Error("expected old person in range")
	}
	if p.AnyInRange(20, 40) {
		t.Error("expected nobody aged 20-40")
	}
}

func TestClosestOfAgeFallsBackToSecondary(t *testing.T) {
	men := poolOf(80)
	women := New()
	women.Add(person(9, 30, demography.SexFemale))
	got := ClosestOfAge(women, men, 30, 18, 64)
	if got == nil || got.ID != 9 {
		t.Fatalf("expected primary pool hit, got %v", got)
	}
	// Primary now empty in range; should fall back to men.
	got = ClosestOfAge(women, men, 70, 65, 99)
	if got == nil || got.Age != 80 {
		t.Errorf("expected fallback to secondary pool, got %v", got)
	}
	// Neither pool has anyone in range.
	if got := ClosestOfAge(women, men, 10, 0, 17); got != nil {
		t.Errorf("expected nil, got person aged %d", got.Age)
	}
}

func TestDrainInRangeAscendingAndRemoves(t *testing.T) {
	p := poolOf(30, 10, 20, 80)
	got := p.DrainInRange(0, 64)
	if len(got) != 3 {
		t.Fatalf("expected 3 people, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Age > got[i].Age {
			t.Errorf("expected ascending ages, got %d before %d", got[i-1].Age, got[i].Age)
		}
	}
	if p.Len() != 1 {
		t.Errorf("expected only the 80-year-old left, len=%d", p.Len())
	}
}
