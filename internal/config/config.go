// Package config provides the distributor tunables and the empirical
// age-difference tables, loaded from YAML with validated defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/synthpop-dev/synthpop/internal/census"
)

// Config holds every knob of the household distributor.
type Config struct {
	KidMaxAge        int `yaml:"kid_max_age"`
	StudentMinAge    int `yaml:"student_min_age"`
	StudentMaxAge    int `yaml:"student_max_age"`
	OldMinAge        int `yaml:"old_min_age"`
	OldMaxAge        int `yaml:"old_max_age"`
	AdultMinAge      int `yaml:"adult_min_age"`
	AdultMaxAge      int `yaml:"adult_max_age"`
	YoungAdultMinAge int `yaml:"young_adult_min_age"`
	YoungAdultMaxAge int `yaml:"young_adult_max_age"`
	MaxAgeToBeParent int `yaml:"max_age_to_be_parent"`
	CommunalMinAge   int `yaml:"communal_min_age"`
	MaxHouseholdSize int `yaml:"max_household_size"`

	// IgnoreOrphans controls whether a kid with no demographically
	// plausible parent is an error (false) or is left for the leftover
	// pass (true).
	IgnoreOrphans bool `yaml:"ignore_orphans"`

	// AllowedCompositions overrides the recognized composition key
	// set. Empty means the default 16-key set.
	AllowedCompositions []string `yaml:"allowed_household_compositions"`

	// Age-difference probability tables. Keys are age differences in
	// years, values are probabilities.
	FirstKidParentAgeDiffs  map[int]float64 `yaml:"first_kid_parent_age_differences"`
	SecondKidParentAgeDiffs map[int]float64 `yaml:"second_kid_parent_age_differences"`
	CouplesAgeDiffs         map[int]float64 `yaml:"couples_age_differences"`
}

// Default returns the standard distributor configuration. The default
// age-difference tables are coarse national-level distributions; real
// runs should load observed tables from file.
func Default() Config {
	return Config{
		KidMaxAge:           17,
		StudentMinAge:       18,
		StudentMaxAge:       25,
		OldMinAge:           65,
		OldMaxAge:           99,
		AdultMinAge:         18,
		AdultMaxAge:         64,
		YoungAdultMinAge:    18,
		YoungAdultMaxAge:    35,
		MaxAgeToBeParent:    64,
		CommunalMinAge:      15,
		MaxHouseholdSize:    8,
		AllowedCompositions: census.DefaultAllowedCompositions(),
		FirstKidParentAgeDiffs: map[int]float64{
			22: 0.05, 24: 0.10, 26: 0.15, 28: 0.20, 30: 0.20,
			32: 0.15, 34: 0.10, 36: 0.05,
		},
		SecondKidParentAgeDiffs: map[int]float64{
			25: 0.05, 27: 0.10, 29: 0.15, 31: 0.20, 33: 0.20,
			35: 0.15, 37: 0.10, 39: 0.05,
		},
		CouplesAgeDiffs: map[int]float64{
			-3: 0.05, -2: 0.07, -1: 0.10, 0: 0.25, 1: 0.15,
			2: 0.15, 3: 0.10, 4: 0.07, 5: 0.06,
		},
	}
}

// Load reads a config overriding the defaults from a YAML file. A
// table present in the file replaces the default table wholesale.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	// Nil out the map fields so the decoder cannot merge file entries
	// into the defaults; absent tables are restored below.
	cfg.FirstKidParentAgeDiffs = nil
	cfg.SecondKidParentAgeDiffs = nil
	cfg.CouplesAgeDiffs = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config YAML: %w", err)
	}
	def := Default()
	if cfg.FirstKidParentAgeDiffs == nil {
		cfg.FirstKidParentAgeDiffs = def.FirstKidParentAgeDiffs
	}
	if cfg.SecondKidParentAgeDiffs == nil {
		cfg.SecondKidParentAgeDiffs = def.SecondKidParentAgeDiffs
	}
	if cfg.CouplesAgeDiffs == nil {
		cfg.CouplesAgeDiffs = def.CouplesAgeDiffs
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks age bounds, the composition set, and the tables.
func (c Config) Validate() error {
	type bound struct {
		name     string
		min, max int
	}
	for _, b := range []bound{
		{"student", c.StudentMinAge, c.StudentMaxAge},
		{"old", c.OldMinAge, c.OldMaxAge},
		{"adult", c.AdultMinAge, c.AdultMaxAge},
		{"young adult", c.YoungAdultMinAge, c.YoungAdultMaxAge},
	} {
		if b.min < 0 || b.max < b.min {
			return fmt.Errorf("%s age range [%d, %d] is invalid", b.name, b.min, b.max)
		}
	}
	if c.KidMaxAge < 0 {
		return fmt.Errorf("kid_max_age %d is invalid", c.KidMaxAge)
	}
	if c.CommunalMinAge < 0 {
		return fmt.Errorf("communal_min_age %d is invalid", c.CommunalMinAge)
	}
	if c.MaxHouseholdSize < 1 {
		return fmt.Errorf("max_household_size %d is invalid", c.MaxHouseholdSize)
	}
	for _, key := range c.AllowedCompositions {
		if _, err := census.ParseComposition(key); err != nil {
			return err
		}
	}
	for name, table := range map[string]map[int]float64{
		"first_kid_parent_age_differences":  c.FirstKidParentAgeDiffs,
		"second_kid_parent_age_differences": c.SecondKidParentAgeDiffs,
		"couples_age_differences":           c.CouplesAgeDiffs,
	} {
		if len(table) == 0 {
			return fmt.Errorf("%s: empty table", name)
		}
		sum := 0.0
		for diff, p := range table {
			if p < 0 {
				return fmt.Errorf("%s: negative probability for difference %d", name, diff)
			}
			sum += p
		}
		if sum <= 0 {
			return fmt.Errorf("%s: probabilities sum to %v", name, sum)
		}
	}
	return nil
}
