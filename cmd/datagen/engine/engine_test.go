package engine

import (
	"context"
	"path/filepath"
	"testing"

	"sia-analytics/internal/dataset"
	"sia-analytics/internal/stats"
)

func TestGenerate(t *testing.T) {
	tbl := Generate(GeneratorConfig{Scenario: "mild", Distribution: "weibull", Count: 200, Seed: 1})

	if len(tbl.Rows) != 200 {
		t.Fatalf("expected 200 rows, got %d", len(tbl.Rows))
	}
	for i, row := range tbl.Rows {
		if len(row) != len(tbl.Header) {
			t.Fatalf("row %d has %d cells, header has %d", i, len(row), len(tbl.Header))
		}
	}

	again := Generate(GeneratorConfig{Scenario: "mild", Distribution: "weibull", Count: 200, Seed: 1})
	for i := range tbl.Rows {
		for j := range tbl.Rows[i] {
			if tbl.Rows[i][j] != again.Rows[i][j] {
				t.Fatalf("same seed produced different data at row %d col %d", i, j)
			}
		}
	}
}

func TestGenerate_ChaosHasHeavierDelays(t *testing.T) {
	meanDelay := func(scenario string) float64 {
		tbl := Generate(GeneratorConfig{Scenario: scenario, Distribution: "weibull", Count: 2000, Seed: 7})
		delays, err := dataset.NewFrame(tbl.Header, tbl.Rows).Numeric(dataset.DepartureDelayColumn)
		if err != nil {
			t.Fatal(err)
		}
		return stats.Mean(delays)
	}

	mild, chaos := meanDelay("mild"), meanDelay("chaos")
	if chaos <= mild {
		t.Errorf("chaos mean delay %.2f should exceed mild %.2f", chaos, mild)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	tbl := Generate(GeneratorConfig{Scenario: "chaos", Distribution: "uniform", Count: 50, Seed: 3})
	dir := t.TempDir()

	for _, name := range []string{"train.csv", "train.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(context.Background(), path, "", tbl); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			f, err := dataset.NewFileSource(path, "").Load(context.Background())
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if f.Len() != 50 {
				t.Errorf("expected 50 rows, got %d", f.Len())
			}
			if f.HasColumn("Unnamed: 0") {
				t.Error("index column should be dropped on load")
			}
			if _, err := dataset.HistoricalDelays(f); err != nil {
				t.Errorf("generated data lacks delays: %v", err)
			}
		})
	}
}
