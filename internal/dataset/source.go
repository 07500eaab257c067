package dataset

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sia-analytics/internal/simulation"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// DefaultTable is the SQLite table read when none is configured.
const DefaultTable = "passengers"

// Source provides the dataset to the analytics modules.
type Source interface {
	Load(ctx context.Context) (*Frame, error)
}

// FileSource reads a CSV file or a SQLite database, chosen by extension.
type FileSource struct {
	Path  string
	Table string
}

// NewFileSource creates a source for the given path.
func NewFileSource(path, table string) *FileSource {
	if table == "" {
		table = DefaultTable
	}
	return &FileSource{Path: path, Table: table}
}

// Load reads the whole dataset.
func (s *FileSource) Load(ctx context.Context) (*Frame, error) {
	start := time.Now()

	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("%w: unable to load dataset %s: %v", simulation.ErrData, s.Path, err)
	}

	var (
		frame *Frame
		err   error
	)
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".db", ".sqlite", ".sqlite3":
		frame, err = readSQLite(ctx, s.Path, s.Table)
	default:
		frame, err = readCSVFile(s.Path)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", s.Path).
		Int("rows", frame.Len()).
		Int("columns", len(frame.columns)).
		Dur("elapsed", time.Since(start)).
		Msg("Dataset loaded")
	return frame, nil
}

func readCSVFile(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open dataset: %v", simulation.ErrData, err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses CSV data with a header row. Malformed rows are skipped.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: dataset is empty", simulation.ErrData)
		}
		return nil, fmt.Errorf("%w: failed to read CSV header: %v", simulation.ErrData, err)
	}

	var rows [][]string
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("Skipped malformed CSV rows")
	}
	return NewFrame(header, rows), nil
}

func readSQLite(ctx context.Context, path, table string) (*Frame, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", simulation.ErrData, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query table %q: %v", simulation.ErrData, table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read columns: %v", simulation.ErrData, err)
	}

	var out [][]string
	cells := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: failed to scan row: %v", simulation.ErrData, err)
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error reading table %q: %v", simulation.ErrData, table, err)
	}

	return NewFrame(header, out), nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// StaticSource serves an already loaded frame.
type StaticSource struct {
	Frame *Frame
}

// Load returns the wrapped frame.
func (s StaticSource) Load(context.Context) (*Frame, error) {
	if s.Frame == nil {
		return nil, fmt.Errorf("%w: no dataset loaded", simulation.ErrData)
	}
	return s.Frame, nil
}
