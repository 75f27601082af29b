// Package persistence provides SQLite-based storage for generated
// populations, so a distribution run can be inspected or reloaded
// without recomputing it.
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/synthpop-dev/synthpop/internal/geography"
	"github.com/synthpop-dev/synthpop/internal/households"
)

// DB wraps a SQLite connection for population storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS areas (
		name TEXT PRIMARY KEY,
		population INTEGER NOT NULL,
		household_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS households (
		id INTEGER PRIMARY KEY,
		area_name TEXT NOT NULL,
		type TEXT NOT NULL,
		composition TEXT,
		max_size INTEGER NOT NULL,
		size INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS residents (
		person_id INTEGER PRIMARY KEY,
		household_id INTEGER NOT NULL,
		age INTEGER NOT NULL,
		sex INTEGER NOT NULL,
		subgroup TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_households_area ON households(area_name);
	CREATE INDEX IF NOT EXISTS idx_residents_household ON residents(household_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveAreas writes all areas and their households to the database
// (full replace) in a single transaction.
func (db *DB) SaveAreas(areas []*geography.Area) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"areas", "households", "residents"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	hhStmt, err := tx.Preparex(`INSERT INTO households
		(id, area_name, type, composition, max_size, size)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer hhStmt.Close()

	resStmt, err := tx.Preparex(`INSERT INTO residents
		(person_id, household_id, age, sex, subgroup)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer resStmt.Close()

	for _, area := range areas {
		_, err := tx.Exec(
			"INSERT INTO areas (name, population, household_count) VALUES (?, ?, ?)",
			area.Name, area.Population(), len(area.Households),
		)
		if err != nil {
			return fmt.Errorf("insert area %s: %w", area.Name, err)
		}

		for _, h := range area.Households {
			maxSize := h.MaxSize
			if maxSize == households.Unbounded {
				maxSize = -1
			}
			if _, err := hhStmt.Exec(h.ID, h.AreaName, h.Type, h.Composition, maxSize, h.Size()); err != nil {
				return fmt.Errorf("insert household %d: %w", h.ID, err)
			}
			for sg := households.SubgroupKids; sg <= households.SubgroupOldAdults; sg++ {
				for _, p := range h.Subgroup(sg) {
					if _, err := resStmt.Exec(p.ID, h.ID, p.Age, p.Sex, sg.String()); err != nil {
						return fmt.Errorf("insert resident %d: %w", p.ID, err)
					}
				}
			}
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair describing the run.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// HouseholdRow is the stored form of a household, for queries.
type HouseholdRow struct {
	ID          uint64 `db:"id"`
	AreaName    string `db:"area_name"`
	Type        string `db:"type"`
	Composition string `db:"composition"`
	MaxSize     int    `db:"max_size"`
	Size        int    `db:"size"`
}

// HouseholdsByArea returns the stored households of one area.
func (db *DB) HouseholdsByArea(areaName string) ([]HouseholdRow, error) {
	var rows []HouseholdRow
	err := db.conn.Select(&rows,
		"SELECT id, area_name, type, composition, max_size, size FROM households WHERE area_name = ? ORDER BY id",
		areaName,
	)
	return rows, err
}

// SaveRun performs a full save of a distribution run.
func (db *DB) SaveRun(areas []*geography.Area, seed int64) error {
	slog.Info("saving run", "areas", len(areas))

	if err := db.SaveAreas(areas); err != nil {
		return fmt.Errorf("save areas: %w", err)
	}
	if err := db.SaveMeta("seed", fmt.Sprintf("%d", seed)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("run saved")
	return nil
}
