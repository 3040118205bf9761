package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything leadscope needs at startup: how to reach
// the backing database, who the deployment's assignee is, and where
// exports and logs land.
type Config struct {
	DBDriver  string // "postgres" or "sqlite"
	DBDSN     string
	Assignee  string
	ExportDir string
	LogFile   string
}

// Load reads a .env file if present, then the environment. Missing
// values fall back to local-friendly defaults.
func Load() (*Config, error) {
	// Best effort: running without a .env file is fine.
	_ = godotenv.Load()

	config := &Config{
		DBDriver:  getEnvOrDefault("LEADSCOPE_DB_DRIVER", "postgres"),
		DBDSN:     getEnvOrDefault("LEADSCOPE_DB_DSN", ""),
		Assignee:  getEnvOrDefault("LEADSCOPE_ASSIGNEE", "Pete"),
		ExportDir: getEnvOrDefault("LEADSCOPE_EXPORT_DIR", "."),
		LogFile:   getEnvOrDefault("LEADSCOPE_LOG_FILE", "leadscope.log"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
		// Valid drivers
	default:
		return fmt.Errorf("invalid db driver: %s (must be 'postgres' or 'sqlite')", c.DBDriver)
	}

	if c.DBDSN == "" {
		return fmt.Errorf("LEADSCOPE_DB_DSN is required")
	}

	if c.Assignee == "" {
		return fmt.Errorf("assignee must not be empty")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
