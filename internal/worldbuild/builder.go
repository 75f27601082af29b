// Package worldbuild drives household distribution across many areas,
// fanning the per-area work out over a bounded worker pool.
package worldbuild

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/synthpop-dev/synthpop/internal/census"
	"github.com/synthpop-dev/synthpop/internal/demography"
	"github.com/synthpop-dev/synthpop/internal/distributor"
	"github.com/synthpop-dev/synthpop/internal/geography"
	"github.com/synthpop-dev/synthpop/internal/households"
)

// Builder distributes households for a set of areas.
type Builder struct {
	dist *distributor.Distributor

	// Workers bounds the number of areas distributed concurrently.
	Workers int

	// SkipFailedAreas logs and skips areas whose distribution fails
	// instead of aborting the whole build. Invariant panics are never
	// absorbed.
	SkipFailedAreas bool
}

// New returns a builder running one area at a time. Callers raise
// Workers for parallel builds.
func New(dist *distributor.Distributor) *Builder {
	return &Builder{dist: dist, Workers: 1}
}

// Result summarizes a multi-area build.
type Result struct {
	Areas      []*geography.Area
	Households households.Households
	Skipped    []string
}

// PopulateAreas creates one area per census row, in name order, each
// with a synthetic population of the recorded size. Person IDs are
// unique across areas and the output depends only on seed.
func PopulateAreas(data *census.File, seed int64) []*geography.Area {
	names := make([]string, 0, len(data.Areas))
	for name := range data.Areas {
		names = append(names, name)
	}
	sort.Strings(names)

	gen := demography.NewGenerator(seed)
	areas := make([]*geography.Area, 0, len(names))
	for _, name := range names {
		areas = append(areas, &geography.Area{
			Name:   name,
			People: gen.Generate(data.Areas[name].Population),
		})
	}
	return areas
}

// Build runs household distribution for every area. Each area gets
// its own RNG seeded from the build seed and the area's index, so
// results are reproducible regardless of worker count.
func (b *Builder) Build(ctx context.Context, areas []*geography.Area, data *census.File, seed int64) (*Result, error) {
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	slog.Info("building households", "areas", len(areas), "workers", workers, "seed", seed)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]households.Households, len(areas))
	skipped := make([]bool, len(areas))

	for i, area := range areas {
		row, ok := data.Areas[area.Name]
		if !ok {
			return nil, fmt.Errorf("area %s: no census row", area.Name)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(seed + int64(i) + 1))
			hs, err := b.dist.Distribute(rng, area, row)
			if err != nil {
				if b.SkipFailedAreas {
					slog.Warn("skipping area", "area", area.Name, "error", err)
					skipped[i] = true
					return nil
				}
				return fmt.Errorf("area %s: %w", area.Name, err)
			}
			results[i] = hs
			slog.Debug("area distributed",
				"area", area.Name,
				"people", area.Population(),
				"households", len(hs))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Areas: areas}
	for i := range areas {
		if skipped[i] {
			res.Skipped = append(res.Skipped, areas[i].Name)
			continue
		}
		res.Households = res.Households.Concat(results[i])
	}
	slog.Info("build complete",
		"households", len(res.Households),
		"people", res.Households.TotalPeople(),
		"skipped", len(res.Skipped))
	return res, nil
}
