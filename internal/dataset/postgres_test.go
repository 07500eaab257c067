package dataset

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		location string
		postgres bool
	}{
		{"assets/train.csv", false},
		{"data/survey.db", false},
		{"postgres://analytics@db.internal:5432/sia", true},
		{"PostgreSQL://localhost/sia?sslmode=disable", true},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			src := Open(tt.location, "")
			_, isPG := src.(*PostgresSource)
			if isPG != tt.postgres {
				t.Errorf("Open(%q) returned %T", tt.location, src)
			}
		})
	}
}

func TestCellString(t *testing.T) {
	var num pgtype.Numeric
	if err := num.Scan("12.5"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"null", nil, ""},
		{"text", "satisfied", "satisfied"},
		{"bytes", []byte("Eco"), "Eco"},
		{"integer", int64(25), "25"},
		{"float", 7.5, "7.5"},
		{"numeric", num, "12.5"},
		{"null numeric", pgtype.Numeric{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellString(tt.in); got != tt.want {
				t.Errorf("cellString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Runs only against a live database, e.g.
// SIA_TEST_POSTGRES_URL=postgres://localhost/sia_test go test ./internal/dataset
func TestPostgresSource_Live(t *testing.T) {
	url := os.Getenv("SIA_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("SIA_TEST_POSTGRES_URL not set")
	}

	f, err := NewPostgresSource(url, os.Getenv("SIA_TEST_POSTGRES_TABLE")).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if f.Len() == 0 {
		t.Error("expected rows from the live table")
	}
}

func TestPostgresSource_Unreachable(t *testing.T) {
	src := NewPostgresSource("postgres://nobody@127.0.0.1:1/none?connect_timeout=1", "")
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected an error for an unreachable database")
	}
}
