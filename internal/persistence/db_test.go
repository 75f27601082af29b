package persistence

import (
	"path/filepath"
	"testing"

	"github.com/synthpop-dev/synthpop/internal/demography"
	"github.com/synthpop-dev/synthpop/internal/geography"
	"github.com/synthpop-dev/synthpop/internal/households"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "synthpop.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testAreaWithHousehold(t *testing.T) *geography.Area {
	t.Helper()
	adult := &demography.Person{ID: 1, Age: 40, Sex: demography.SexFemale}
	kid := &demography.Person{ID: 2, Age: 9, Sex: demography.SexMale}
	h := &households.Household{
		ID:          11,
		AreaName:    "E00000001",
		Type:        households.TypeFamily,
		Composition: "1 0 >=0 1 0",
		MaxSize:     households.Unbounded,
	}
	h.Add(adult, households.SubgroupAdults)
	h.Add(kid, households.SubgroupKids)
	return &geography.Area{
		Name:       "E00000001",
		People:     []*demography.Person{adult, kid},
		Households: households.Households{h},
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	db := openTestDB(t)
	area := testAreaWithHousehold(t)

	if err := db.SaveRun([]*geography.Area{area}, 42); err != nil {
		t.Fatal(err)
	}

	rows, err := db.HouseholdsByArea("E00000001")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 household row, got %d", len(rows))
	}
	row := rows[0]
	if row.ID != 11 || row.Type != "family" || row.Size != 2 {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.MaxSize != -1 {
		t.Errorf("unbounded max size should be stored as -1, got %d", row.MaxSize)
	}

	seed, err := db.GetMeta("seed")
	if err != nil {
		t.Fatal(err)
	}
	if seed != "42" {
		t.Errorf("expected seed 42, got %q", seed)
	}
}

func TestSaveAreasReplacesPreviousRun(t *testing.T) {
	db := openTestDB(t)
	area := testAreaWithHousehold(t)

	if err := db.SaveAreas([]*geography.Area{area}); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveAreas([]*geography.Area{area}); err != nil {
		t.Fatal(err)
	}

	rows, err := db.HouseholdsByArea("E00000001")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("expected full replace, got %d rows", len(rows))
	}
}
