package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/lirajourney/internal/logger"
	"github.com/vytor/lirajourney/internal/reviewqueue"
)

type Config struct {
	DataDir       string
	OutputDir     string
	StaticDir     string
	TemplatesDir  string
	QueuePath     string
	HistoryDBPath string
	LogLevel      string
	ReviewLimit   int
	RandomSeed    uint64
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the generator still runs when .env is absent.
	_ = godotenv.Load()

	dataDir := envOr("DATA_DIR", "data")
	return Config{
		DataDir:       dataDir,
		OutputDir:     envOr("OUTPUT_DIR", "output"),
		StaticDir:     envOr("STATIC_DIR", "static"),
		TemplatesDir:  os.Getenv("TEMPLATES_DIR"),
		QueuePath:     envOr("QUEUE_PATH", filepath.Join(dataDir, "review_queue.json")),
		HistoryDBPath: envOr("HISTORY_DB_PATH", "lirajourney.db"),
		LogLevel:      envOr("LOG_LEVEL", "INFO"),
		ReviewLimit:   envIntOr("REVIEW_LIMIT", reviewqueue.DefaultLimit),
		RandomSeed:    envUintOr("RANDOM_SEED", 0),
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("DATA_DIR cannot be empty")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("OUTPUT_DIR cannot be empty")
	}
	if strings.TrimSpace(c.QueuePath) == "" {
		return fmt.Errorf("QUEUE_PATH cannot be empty")
	}
	if strings.TrimSpace(c.HistoryDBPath) == "" {
		return fmt.Errorf("HISTORY_DB_PATH cannot be empty")
	}
	if c.ReviewLimit <= 0 {
		return fmt.Errorf("REVIEW_LIMIT must be positive, got %d", c.ReviewLimit)
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		return fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel)
	}
	return nil
}

// CharactersDir is where per-character JSON files live.
func (c Config) CharactersDir() string {
	return filepath.Join(c.DataDir, "characters")
}

// VocabularyPath is the global vocabulary catalogue.
func (c Config) VocabularyPath() string {
	return filepath.Join(c.DataDir, "vocabulary", "vocabulary.json")
}

// ManifestPath is the optional site manifest.
func (c Config) ManifestPath() string {
	return filepath.Join(c.DataDir, "site.toml")
}

// JourneysDir is the output directory for character pages.
func (c Config) JourneysDir() string {
	return filepath.Join(c.OutputDir, "journeys")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envUintOr(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			return u
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
