// Package sampler provides batched draws from empirical categorical
// distributions (age-difference tables, the sex coin). Distributions
// are built once and sampled in batches sized to the area population,
// consumed as stacks.
package sampler

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gitlab.com/zephyrtronium/pick"
)

// weightScale converts probabilities to the integer weights pick wants.
const weightScale = 1e9

// Discrete is an empirical categorical distribution over integers.
type Discrete struct {
	dist *pick.Dist[int]
}

// NewDiscrete builds a distribution from a value→probability table.
// Probabilities need not be normalized but must be non-negative with a
// positive sum.
func NewDiscrete(table map[int]float64) (*Discrete, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("discrete distribution: empty table")
	}
	values := make([]int, 0, len(table))
	sum := 0.0
	for v, p := range table {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("discrete distribution: bad probability %v for value %d", p, v)
		}
		values = append(values, v)
		sum += p
	}
	if sum <= 0 {
		return nil, fmt.Errorf("discrete distribution: probabilities sum to %v", sum)
	}
	// Sorted for a deterministic case order regardless of map iteration.
	sort.Ints(values)
	cases := make([]pick.Case[int], 0, len(values))
	for _, v := range values {
		w := int(math.Round(table[v] / sum * weightScale))
		if w == 0 && table[v] > 0 {
			w = 1
		}
		cases = append(cases, pick.Case[int]{E: v, W: w})
	}
	return &Discrete{dist: pick.New(cases)}, nil
}

// Sample draws one value.
func (d *Discrete) Sample(rng *rand.Rand) int {
	return d.dist.Pick(rng.Uint32())
}

// Draw samples n values up front and returns them as a stack.
func (d *Discrete) Draw(rng *rand.Rand, n int) *Batch {
	vals := make([]int, n)
	for i := range vals {
		vals[i] = d.Sample(rng)
	}
	return &Batch{vals: vals}
}

// Batch is a pre-drawn stack of samples. Batches are sized to the area
// population, so exhaustion is a programming defect, not a data error.
type Batch struct {
	vals []int
}

// Pop removes and returns the last sample. It panics when the batch is
// exhausted.
func (b *Batch) Pop() int {
	if len(b.vals) == 0 {
		panic("sampler: batch exhausted")
	}
	v := b.vals[len(b.vals)-1]
	b.vals = b.vals[:len(b.vals)-1]
	return v
}

// Len returns the number of samples remaining.
func (b *Batch) Len() int {
	return len(b.vals)
}

// SexCoin is a fair 0/1 distribution used to pick which sex pool a
// random draw prefers.
func SexCoin() *Discrete {
	d, err := NewDiscrete(map[int]float64{0: 0.5, 1: 0.5})
	if err != nil {
		panic(err)
	}
	return d
}
