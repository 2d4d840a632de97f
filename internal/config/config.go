package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath  string
	OutputDir string
	MapPath   string
	LogDir    string

	// FallbackEncoding is the 8-bit codepage tried when a CSV source is not
	// valid UTF-8.
	FallbackEncoding *charmap.Charmap
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority when
	// launched by a wrapper that does not set a working directory).
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

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = "."
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	cfg := &AppConfig{
		DataPath:         dataPath,
		OutputDir:        getEnv("OUTPUT_DIR", filepath.Join(dataPath, "output")),
		MapPath:          getEnv("MAP_PATH", filepath.Join(dataPath, "map.csv")),
		LogDir:           logDir,
		FallbackEncoding: encodingByName(getEnv("CSV_FALLBACK_ENCODING", "windows-1252")),
	}

	return cfg, nil
}

// encodingByName resolves a codepage name. Unknown names fall back to
// windows-1252 with a warning rather than failing the load.
func encodingByName(name string) *charmap.Charmap {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows-1252", "cp1252":
		return charmap.Windows1252
	case "windows-1251", "cp1251":
		return charmap.Windows1251
	case "iso-8859-1", "latin-1", "latin1":
		return charmap.ISO8859_1
	case "none":
		return nil
	default:
		log.Warn().Str("encoding", name).Msg("Unknown fallback encoding, using windows-1252")
		return charmap.Windows1252
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
