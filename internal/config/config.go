package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Token            string
	CommandPrefix    string
	Locale           string
	ModeratorRoleIDs []string

	StoreDriver    string
	DatabaseURL    string
	SQLitePath     string
	MigrationsPath string

	// StatusAddr is the status API listen address; empty disables it.
	StatusAddr string

	RemoveRequiresModerator bool
}

// Load reads the configuration from the environment (and an optional .env file)
// and validates it.
func Load() (*Config, error) {
	// .env is optional when the variables come from the environment (Docker, CI...).
	_ = godotenv.Load()

	removeRequiresModerator, err := getBool("REMOVE_REQUIRES_MODERATOR", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Token:                   os.Getenv("TOKEN"),
		CommandPrefix:           getEnv("COMMAND_PREFIX", "!"),
		Locale:                  getEnv("LOCALE", "en"),
		ModeratorRoleIDs:        splitList(os.Getenv("MODERATOR_ROLE_IDS")),
		StoreDriver:             strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		SQLitePath:              getEnv("SQLITE_PATH", "eventbot.db"),
		MigrationsPath:          getEnv("MIGRATIONS_PATH", "internal/infrastructure/database/migrations"),
		StatusAddr:              os.Getenv("STATUS_ADDR"),
		RemoveRequiresModerator: removeRequiresModerator,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required")
	}

	for _, id := range c.ModeratorRoleIDs {
		if !isSnowflake(id) {
			return fmt.Errorf("config: MODERATOR_ROLE_IDS must hold Discord role IDs (digits only), got %q", id)
		}
	}

	switch c.StoreDriver {
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("config: SQLITE_PATH cannot be empty")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			// Local default when DATABASE_URL is not provided.
			c.DatabaseURL = "postgres://localhost:5432/eventbot?sslmode=disable"
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	default:
		return fmt.Errorf("config: STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.StoreDriver)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
