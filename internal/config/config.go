package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DatasetPath    string // csv or sqlite file, or a postgres:// URL
	DatasetTable   string
	HTTPAddr       string
	AllowedOrigins []string
	MaxSimulations int
	Seed           *uint64 // nil draws from the clock
	EnableTheme    bool
	LogDir         string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. The binary's directory wins, so an installed copy carries its own settings.
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	logDir := getEnv("LOGS_FOLDER", "")
	if logDir == "" {
		if exeDir != "" {
			logDir = filepath.Join(exeDir, "logs")
		} else {
			logDir = "logs"
		}
	}

	maxSims, err := strconv.Atoi(getEnv("MAX_SIMULATIONS", "50000"))
	if err != nil || maxSims <= 0 {
		log.Warn().Str("value", os.Getenv("MAX_SIMULATIONS")).Msg("Invalid MAX_SIMULATIONS, using 50000")
		maxSims = 50000
	}

	cfg := &AppConfig{
		DatasetPath:    getEnv("DATASET_PATH", filepath.Join("assets", "train.csv")),
		DatasetTable:   getEnv("DATASET_TABLE", "passengers"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8501"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:8501")),
		MaxSimulations: maxSims,
		Seed:           getEnvSeed("SIMULATION_SEED"),
		EnableTheme:    getEnvBool("ENABLE_THEME", true),
		LogDir:         logDir,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvSeed(key string) *uint64 {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	seed, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring invalid simulation seed")
		return nil
	}
	return &seed
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
