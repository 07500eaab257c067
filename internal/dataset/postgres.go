package dataset

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"sia-analytics/internal/simulation"
)

// PostgresSource reads the survey table from a PostgreSQL database.
type PostgresSource struct {
	URL   string
	Table string
}

// NewPostgresSource creates a source for the given connection URL.
func NewPostgresSource(url, table string) *PostgresSource {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresSource{URL: url, Table: table}
}

// IsPostgresURL reports whether location names a PostgreSQL database.
func IsPostgresURL(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "postgres://") || strings.HasPrefix(l, "postgresql://")
}

// Open returns the source matching location: a PostgreSQL URL or a file path.
func Open(location, table string) Source {
	if IsPostgresURL(location) {
		return NewPostgresSource(location, table)
	}
	return NewFileSource(location, table)
}

// Load reads the whole table.
func (s *PostgresSource) Load(ctx context.Context) (*Frame, error) {
	start := time.Now()

	pool, err := pgxpool.New(ctx, s.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create connection pool: %v", simulation.ErrData, err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: failed to ping database: %v", simulation.ErrData, err)
	}

	rows, err := pool.Query(ctx, "SELECT * FROM "+quoteIdent(s.Table))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query table %q: %v", simulation.ErrData, s.Table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	header := make([]string, len(fields))
	for i, fd := range fields {
		header[i] = fd.Name
	}

	var out [][]string
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read row: %v", simulation.ErrData, err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = cellString(v)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error reading table %q: %v", simulation.ErrData, s.Table, err)
	}

	frame := NewFrame(header, out)
	log.Debug().
		Str("table", s.Table).
		Int("rows", frame.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Dataset loaded from PostgreSQL")
	return frame, nil
}

// cellString renders a decoded column value the way it would appear in CSV.
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case driver.Valuer:
		dv, err := val.Value()
		if err != nil || dv == nil {
			return ""
		}
		return fmt.Sprint(dv)
	default:
		return fmt.Sprint(val)
	}
}
