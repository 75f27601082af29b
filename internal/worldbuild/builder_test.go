package worldbuild

import (
	"context"
	"testing"

	"github.com/synthpop-dev/synthpop/internal/census"
	"github.com/synthpop-dev/synthpop/internal/config"
	"github.com/synthpop-dev/synthpop/internal/demography"
	"github.com/synthpop-dev/synthpop/internal/distributor"
	"github.com/synthpop-dev/synthpop/internal/geography"
)

func testDistributor(t *testing.T) *distributor.Distributor {
	t.Helper()
	d, err := distributor.New(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestPopulateAreas(t *testing.T) {
	data := &census.File{Areas: map[string]census.AreaData{
		"B": {Population: 30},
		"A": {Population: 20},
	}}
	areas := PopulateAreas(data, 1)
	if len(areas) != 2 {
		t.Fatalf("expected 2 areas, got %d", len(areas))
	}
	// Name order, regardless of map iteration.
	if areas[0].Name != "A" || areas[1].Name != "B" {
		t.Errorf("expected name order A, B; got %s, %s", areas[0].Name, areas[1].Name)
	}
	if areas[0].Population() != 20 || areas[1].Population() != 30 {
		t.Errorf("populations wrong: %d, %d", areas[0].Population(), areas[1].Population())
	}
	seen := map[demography.PersonID]bool{}
	for _, a := range areas {
		for _, p := range a.People {
			if seen[p.ID] {
				t.Fatalf("person ID %d reused across areas", p.ID)
			}
			seen[p.ID] = true
		}
	}

	again := PopulateAreas(data, 1)
	for i := range areas {
		for j := range areas[i].People {
			a, b := areas[i].People[j], again[i].People[j]
			if a.Age != b.Age || a.Sex != b.Sex {
				t.Fatal("same seed produced different populations")
			}
		}
	}
}

func TestBuildDistributesEveryArea(t *testing.T) {
	data := &census.File{Areas: map[string]census.AreaData{
		"A": {Population: 12, Households: map[string]int{"0 0 0 2 0": 6}},
		"B": {Population: 8, Households: map[string]int{"0 0 0 2 0": 4}},
	}}
	areas := PopulateAreas(data, 3)

	b := New(testDistributor(t))
	b.Workers = 2
	res, err := b.Build(context.Background(), areas, data, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("unexpected skips: %v", res.Skipped)
	}
	if got := res.Households.TotalPeople(); got != 20 {
		t.Errorf("expected all 20 people placed, got %d", got)
	}
	for _, area := range res.Areas {
		if len(area.Households) == 0 {
			t.Errorf("area %s has no households", area.Name)
		}
		for _, p := range area.People {
			if !p.Assigned() {
				t.Errorf("area %s: person %d unassigned", area.Name, p.ID)
			}
		}
	}
}

func TestBuildDeterministicAcrossWorkerCounts(t *testing.T) {
	data := &census.File{Areas: map[string]census.AreaData{
		"A": {Population: 12, Households: map[string]int{"0 0 0 2 0": 6}},
		"B": {Population: 8, Households: map[string]int{"0 0 0 2 0": 4}},
	}}

	build := func(workers int) map[string][]int {
		areas := PopulateAreas(data, 7)
		b := New(testDistributor(t))
		b.Workers = workers
		res, err := b.Build(context.Background(), areas, data, 7)
		if err != nil {
			t.Fatal(err)
		}
		out := map[string][]int{}
		for _, area := range res.Areas {
			sizes := make([]int, 0, len(area.Households))
			for _, h := range area.Households {
				sizes = append(sizes, h.Size())
			}
			out[area.Name] = sizes
		}
		return out
	}

	serial, parallel := build(1), build(4)
	for name, sizes := range serial {
		got := parallel[name]
		if len(got) != len(sizes) {
			t.Fatalf("area %s: %d vs %d households across worker counts", name, len(sizes), len(got))
		}
		for i := range sizes {
			if sizes[i] != got[i] {
				t.Fatalf("area %s household %d: size %d vs %d", name, i, sizes[i], got[i])
			}
		}
	}
}

func TestBuildMissingCensusRow(t *testing.T) {
	data := &census.File{Areas: map[string]census.AreaData{
		"A": {Population: 4, Households: map[string]int{"0 0 0 2 0": 2}},
	}}
	areas := []*geography.Area{{Name: "ZZ", People: demography.NewGenerator(1).Generate(4)}}

	b := New(testDistributor(t))
	if _, err := b.Build(context.Background(), areas, data, 1); err == nil {
		t.Fatal("expected error for area without census row")
	}
}

func TestBuildSkipFailedAreas(t *testing.T) {
	// Area "bad" holds a lone kid requesting a family household, which
	// fails with an orphan error.
	data := &census.File{Areas: map[string]census.AreaData{
		"bad":  {Households: map[string]int{"1 0 >=0 1 0": 1}},
		"good": {Households: map[string]int{"0 0 0 2 0": 1}},
	}}
	areas := []*geography.Area{
		{Name: "bad", People: []*demography.Person{
			{ID: 1, Age: 5, Sex: demography.SexMale},
		}},
		{Name: "good", People: []*demography.Person{
			{ID: 2, Age: 30, Sex: demography.SexMale},
			{ID: 3, Age: 31, Sex: demography.SexFemale},
		}},
	}

	b := New(testDistributor(t))
	if _, err := b.Build(context.Background(), areas, data, 1); err == nil {
		t.Fatal("expected build to fail on the orphan area")
	}

	b.SkipFailedAreas = true
	res, err := b.Build(context.Background(), areas, data, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "bad" {
		t.Fatalf("expected area bad skipped, got %v", res.Skipped)
	}
	if got := res.Households.TotalPeople(); got != 2 {
		t.Errorf("expected 2 people from the good area, got %d", got)
	}
}
