package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/synthpop-dev/synthpop/internal/census"
	"github.com/synthpop-dev/synthpop/internal/config"
	"github.com/synthpop-dev/synthpop/internal/distributor"
	"github.com/synthpop-dev/synthpop/internal/persistence"
	"github.com/synthpop-dev/synthpop/internal/worldbuild"
)

type distributeOptions struct {
	seed       int64
	workers    int
	configPath string
	dbPath     string
	skipFailed bool
}

// loadInputs reads the tunables and the census file.
func loadInputs(censusPath, configPath string) (config.Config, *census.File, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
		}
	}
	data, err := census.Load(censusPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading census: %w", err)
	}
	return cfg, data, nil
}

func runDistribute(ctx context.Context, censusPath string, opts distributeOptions) error {
	cfg, data, err := loadInputs(censusPath, opts.configPath)
	if err != nil {
		return err
	}

	dist, err := distributor.New(cfg)
	if err != nil {
		return err
	}

	areas := worldbuild.PopulateAreas(data, opts.seed)
	builder := worldbuild.New(dist)
	builder.Workers = opts.workers
	builder.SkipFailedAreas = opts.skipFailed

	res, err := builder.Build(ctx, areas, data, opts.seed)
	if err != nil {
		return err
	}

	if opts.dbPath != "" {
		db, err := persistence.Open(opts.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.SaveRun(res.Areas, opts.seed); err != nil {
			return err
		}
		slog.Info("population stored", "path", opts.dbPath)
	}

	fmt.Printf("areas: %d  households: %d  people: %d  skipped: %d\n",
		len(res.Areas)-len(res.Skipped),
		len(res.Households),
		res.Households.TotalPeople(),
		len(res.Skipped))
	return nil
}

func runValidate(censusPath, configPath string) error {
	cfg, data, err := loadInputs(censusPath, configPath)
	if err != nil {
		return err
	}

	allowed := make(map[string]bool, len(cfg.AllowedCompositions))
	for _, key := range cfg.AllowedCompositions {
		allowed[key] = true
	}

	failed := false
	for name, row := range data.Areas {
		for key, n := range row.Households {
			switch {
			case !allowed[key]:
				fmt.Fprintf(os.Stderr, "area %s: unrecognized composition %q\n", name, key)
				failed = true
			case n < 0:
				fmt.Fprintf(os.Stderr, "area %s: negative count %d for %q\n", name, n, key)
				failed = true
			}
		}
		if row.Population < 0 || row.Students < 0 || row.Communal < 0 {
			fmt.Fprintf(os.Stderr, "area %s: negative population figures\n", name)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("census file has validation errors")
	}

	fmt.Printf("ok: %d areas\n", len(data.Areas))
	return nil
}
