package engine

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
	_ "modernc.org/sqlite"

	"sia-analytics/internal/dataset"
	"sia-analytics/internal/experience"
)

type GeneratorConfig struct {
	Scenario     string // "mild" or "chaos"
	Distribution string // "uniform" or "weibull"
	Count        int
	Seed         uint64
}

// Table is a generated survey in header + rows form.
type Table struct {
	Header []string
	Rows   [][]string
}

var classes = []string{"Business", "Eco", "Eco Plus"}

// Header returns the survey columns, index column first.
func Header() []string {
	h := []string{"Unnamed: 0", "id", "Gender", "Customer Type", "Age", "Type of Travel", dataset.ClassColumn, dataset.FlightDistanceColumn}
	h = append(h, experience.ServiceColumns...)
	return append(h, dataset.DepartureDelayColumn, dataset.ArrivalDelayColumn, dataset.SatisfactionColumn)
}

func Generate(cfg GeneratorConfig) Table {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9E3779B97F4A7C15))

	// Mild: most flights leave on time with a short tail
	onTime, k, lambda := 0.6, 1.3, 18.0
	if cfg.Scenario == "chaos" {
		onTime, k, lambda = 0.35, 0.8, 45.0
	}
	tail := distuv.Weibull{K: k, Lambda: lambda, Src: rng}

	t := Table{Header: Header()}
	for i := 0; i < cfg.Count; i++ {
		class := classes[rng.IntN(len(classes))]
		distance := 100 + rng.IntN(3900)
		if class == "Business" {
			distance += 500
		}

		var delay float64
		if rng.Float64() >= onTime {
			if cfg.Distribution == "weibull" {
				delay = math.Round(tail.Rand())
			} else {
				delay = float64(1 + rng.IntN(int(lambda*3)))
			}
		}
		arrival := strconv.Itoa(int(math.Max(0, delay+float64(rng.IntN(21)-10))))
		if rng.Float64() < 0.003 {
			arrival = ""
		}

		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(i + 1),
			[]string{"Female", "Male"}[rng.IntN(2)],
			[]string{"Loyal Customer", "disloyal Customer"}[rng.IntN(2)],
			strconv.Itoa(7 + rng.IntN(79)),
			[]string{"Business travel", "Personal Travel"}[rng.IntN(2)],
			class,
			strconv.Itoa(distance),
		}

		ratingSum := 0
		for range experience.ServiceColumns {
			r := 1 + rng.IntN(5)
			if class == "Business" && r < 5 && rng.Float64() < 0.3 {
				r++
			}
			ratingSum += r
			row = append(row, strconv.Itoa(r))
		}

		satisfaction := "neutral or dissatisfied"
		if float64(ratingSum)/float64(len(experience.ServiceColumns)) >= 3.2 && delay < 60 {
			satisfaction = "satisfied"
		}
		row = append(row, strconv.Itoa(int(delay)), arrival, satisfaction)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Save writes the table as CSV, or as a SQLite table when the path has a
// database extension.
func Save(ctx context.Context, path, table string, t Table) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return saveSQLite(ctx, path, table, t)
	default:
		return saveCSV(path, t)
	}
}

func saveCSV(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return err
	}
	return f.Close()
}

func saveSQLite(ctx context.Context, path, table string, t Table) error {
	if table == "" {
		table = dataset.DefaultTable
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	cols := make([]string, len(t.Header))
	marks := make([]string, len(t.Header))
	for i, h := range t.Header {
		cols[i] = quote(h) + " TEXT"
		marks[i] = "?"
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(table)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", quote(table), strings.Join(cols, ", "))); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", quote(table), strings.Join(marks, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(t.Header))
	for _, row := range t.Rows {
		for i := range args {
			args[i] = row[i]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
