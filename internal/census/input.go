package census

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AreaData holds the raw census aggregates for one output area.
type AreaData struct {
	// Population is the number of synthetic people to generate for the
	// area when no explicit person list is supplied.
	Population int `yaml:"population"`

	// Households maps composition keys to the number of households of
	// that composition in the area.
	Households map[string]int `yaml:"households"`

	// Students is the declared number of students living in the area,
	// independent of the generic pools.
	Students int `yaml:"students"`

	// Communal is the declared number of people living in communal
	// establishments.
	Communal int `yaml:"communal"`
}

// TotalHouseholds returns the total number of households requested
// across all compositions.
func (d AreaData) TotalHouseholds() int {
	n := 0
	for _, c := range d.Households {
		n += c
	}
	return n
}

// File is a census input document: aggregates per area name.
type File struct {
	Areas map[string]AreaData `yaml:"areas"`
}

// Load reads a census file from a YAML document.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading census file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing census YAML: %w", err)
	}
	if len(f.Areas) == 0 {
		return nil, fmt.Errorf("census file %s: no areas", path)
	}
	return &f, nil
}
