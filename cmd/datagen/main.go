package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sia-analytics/cmd/datagen/engine"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos")
	distribution := flag.String("distribution", "weibull", "Delay distribution to use: uniform, weibull")
	out := flag.String("out", filepath.Join("assets", "train.csv"), "Output file (.csv, or .db/.sqlite for SQLite)")
	table := flag.String("table", "passengers", "SQLite table name")
	count := flag.Int("count", 5000, "Number of passengers to generate")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:     *scenario,
		Distribution: *distribution,
		Count:        *count,
		Seed:         *seed,
	}

	fmt.Printf("Generating scenario '%s' (Distribution: %s, Count: %d) to %s...\n", cfg.Scenario, cfg.Distribution, cfg.Count, *out)

	t := engine.Generate(cfg)
	if err := engine.Save(context.Background(), *out, *table, t); err != nil {
		fmt.Printf("Failed to save generated data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
