package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config centralises all environment and runtime configuration.
type Config struct {
	Port           string
	GinMode        string
	AllowedOrigins []string

	DatabaseDriver string
	DatabaseDSN    string
	DBLogLevel     string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	AdminUsername string
	AdminPassword string

	LogLevel    string
	LogFilePath string
}

// Load reads an optional .env file and builds the Config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "8083"),
		GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
		AllowedOrigins:  parseList(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000")),
		DatabaseDriver:  strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", DriverPostgres)),
		DatabaseDSN:     os.Getenv("DATABASE_DSN"),
		DBLogLevel:      getEnvOrDefault("DB_LOG_LEVEL", "warn"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 12*time.Hour),
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFilePath:     os.Getenv("LOG_FILE_PATH"),
	}

	if cfg.DatabaseDSN == "" {
		switch cfg.DatabaseDriver {
		case DriverPostgres:
			cfg.DatabaseDSN = "host=localhost user=postgres password=postgres dbname=barista_salary port=5432 sslmode=disable"
		case DriverSQLite:
			cfg.DatabaseDSN = "barista_salary.db?_pragma=foreign_keys(1)"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseDriver != DriverPostgres && c.DatabaseDriver != DriverSQLite {
		return errors.New("DATABASE_DRIVER must be either postgres or sqlite")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}

func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
