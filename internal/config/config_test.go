package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	doc := `
kid_max_age: 16
max_household_size: 10
ignore_orphans: true
couples_age_differences:
  0: 0.5
  2: 0.5
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.KidMaxAge != 16 {
		t.Errorf("kid_max_age not overridden, got %d", cfg.KidMaxAge)
	}
	if cfg.MaxHouseholdSize != 10 {
		t.Errorf("max_household_size not overridden, got %d", cfg.MaxHouseholdSize)
	}
	if !cfg.IgnoreOrphans {
		t.Error("ignore_orphans not overridden")
	}
	if len(cfg.CouplesAgeDiffs) != 2 {
		t.Errorf("couples table not overridden, got %v", cfg.CouplesAgeDiffs)
	}
	// Untouched fields keep their defaults.
	if cfg.OldMinAge != 65 {
		t.Errorf("old_min_age should keep default 65, got %d", cfg.OldMinAge)
	}
	if len(cfg.AllowedCompositions) != 16 {
		t.Errorf("allowed compositions should keep default set, got %d", len(cfg.AllowedCompositions))
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"inverted range", "adult_min_age: 64\nadult_max_age: 18\n"},
		{"zero households", "max_household_size: 0\n"},
		{"bad composition", "allowed_household_compositions: [\"1 2\"]\n"},
		{"negative probability", "couples_age_differences: {0: -1.0, 1: 2.0}\n"},
		{"empty table", "couples_age_differences: {}\n"},
	}
	for _, c := range cases {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(c.doc), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}
