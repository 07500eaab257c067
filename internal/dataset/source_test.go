package dataset

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"sia-analytics/internal/simulation"
)

func TestFileSource_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFileSource(path, "").Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 5 || f.HasColumn("Unnamed: 0") {
		t.Errorf("unexpected frame: %d rows, columns %v", f.Len(), f.Columns())
	}
}

func TestFileSource_Missing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "absent.csv"), "").Load(context.Background())
	if !errors.Is(err, simulation.ErrData) {
		t.Errorf("expected ErrData, got %v", err)
	}
}

func TestFileSource_EmptyCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileSource(path, "").Load(context.Background())
	if !errors.Is(err, simulation.ErrData) {
		t.Errorf("expected ErrData, got %v", err)
	}
}

func TestFileSource_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	stmts := []string{
		`CREATE TABLE flights ("id" INTEGER, "Departure Delay in Minutes" REAL, "satisfaction" TEXT)`,
		`INSERT INTO flights VALUES (1, 12.5, 'satisfied')`,
		`INSERT INTO flights VALUES (2, NULL, 'neutral or dissatisfied')`,
		`INSERT INTO flights VALUES (3, 40, 'satisfied')`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	db.Close()

	f, err := NewFileSource(path, "flights").Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", f.Len())
	}

	delays, err := HistoricalDelays(f)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{12.5, 40}; !reflect.DeepEqual(delays, want) {
		t.Errorf("delays = %v, want %v", delays, want)
	}
	if got := f.Value(1, SatisfactionColumn); got != "neutral or dissatisfied" {
		t.Errorf("satisfaction = %q", got)
	}
}

func TestFileSource_SQLiteMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE other (x INTEGER)`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	_, err = NewFileSource(path, "").Load(context.Background())
	if !errors.Is(err, simulation.ErrData) {
		t.Errorf("expected ErrData, got %v", err)
	}
}

func TestStaticSource(t *testing.T) {
	if _, err := (StaticSource{}).Load(context.Background()); !errors.Is(err, simulation.ErrData) {
		t.Errorf("expected ErrData for an empty static source, got %v", err)
	}
}
