// Synthetic population generation for demo runs and tests.
package demography

import (
	"math/rand"
)

// Generator creates synthetic people with plausible demographics.
type Generator struct {
	rng    *rand.Rand
	nextID PersonID
}

// NewGenerator creates a population generator with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed + 300)),
		nextID: 1,
	}
}

// SetNextID sets the next person ID to be issued.
func (g *Generator) SetNextID(id PersonID) {
	g.nextID = id
}

// Generate creates n people with a bell-curve age profile over the
// full 0-99 range and a fair sex split.
func (g *Generator) Generate(n int) []*Person {
	people := make([]*Person, 0, n)
	for i := 0; i < n; i++ {
		people = append(people, g.one())
	}
	return people
}

func (g *Generator) one() *Person {
	id := g.nextID
	g.nextID++

	sex := SexMale
	if g.rng.Float32() < 0.5 {
		sex = SexFemale
	}

	// Age profile: centered around 40 with a long tail into old age.
	age := int(40.0 + g.rng.NormFloat64()*20.0)
	if age < 0 {
		age = 0
	}
	if age > 99 {
		age = 99
	}

	return &Person{ID: id, Age: age, Sex: sex}
}

// UniformByAge creates perAge men and perAge women for every age in
// [minAge, maxAge]. Useful for exercising the distributor with a flat
// age pyramid.
func (g *Generator) UniformByAge(minAge, maxAge, perAge int) []*Person {
	people := make([]*Person, 0, 2*perAge*(maxAge-minAge+1))
	for age := minAge; age <= maxAge; age++ {
		for i := 0; i < perAge; i++ {
			id := g.nextID
			g.nextID++
			people = append(people, &Person{ID: id, Age: age, Sex: SexMale})
			id = g.nextID
			g.nextID++
			people = append(people, &Person{ID: id, Age: age, Sex: SexFemale})
		}
	}
	return people
}
