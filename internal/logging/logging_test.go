package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInit_WritesConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	if err := Init(Options{Verbose: true, Dir: dir, Console: &console}); err != nil {
		t.Fatal(err)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %v", zerolog.GlobalLevel())
	}

	log.Info().Str("module", "risk").Msg("Simulation finished")

	if !strings.Contains(console.String(), "Simulation finished") {
		t.Errorf("console sink missed the message: %q", console.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"module":"risk"`) {
		t.Errorf("file sink should hold JSON lines, got %q", string(data))
	}
}

func TestInit_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	if err := Init(Options{Console: &console}); err != nil {
		t.Fatal(err)
	}
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("expected info level, got %v", zerolog.GlobalLevel())
	}

	log.Debug().Msg("hidden")
	if strings.Contains(console.String(), "hidden") {
		t.Error("debug output must be suppressed at info level")
	}
}
