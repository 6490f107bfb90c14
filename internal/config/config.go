// Package config reads the service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type DBConfig struct {
	// Driver is the database/sql driver name: "pgx" or "postgres" (lib/pq).
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// RedisConfig is disabled when no host is configured.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool { return r.Host != "" }

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type Config struct {
	Port    string
	Storage string
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig

	HistoryWindowDays int
	Location          *time.Location

	RateLimit  int
	RateWindow time.Duration
}

// Load reads an optional .env file, then the environment. Invalid values fail.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		Storage: getEnv("STORAGE", StoragePostgres),
		DB: DBConfig{
			Driver:   getEnv("DB_DRIVER", "pgx"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "habitzen"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "habitzen"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getEnv("JWT_ISSUER", "habitzen-engine"),
		},
	}

	var errs []error
	var err error

	if cfg.Redis.DB, err = intEnv("REDIS_DB", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.JWT.TTL, err = durationEnv("JWT_TTL", 72*time.Hour); err != nil {
		errs = append(errs, err)
	}
	if cfg.HistoryWindowDays, err = intEnv("HISTORY_WINDOW_DAYS", 90); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimit, err = intEnv("RATE_LIMIT", 100); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateWindow, err = durationEnv("RATE_WINDOW", time.Minute); err != nil {
		errs = append(errs, err)
	}

	tz := getEnv("APP_TIMEZONE", "UTC")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		errs = append(errs, fmt.Errorf("config: APP_TIMEZONE %q: %w", tz, err))
	}

	errs = append(errs, cfg.validate()...)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() []error {
	var errs []error

	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("config: STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage))
	}

	switch c.DB.Driver {
	case "pgx", "postgres":
	default:
		errs = append(errs, fmt.Errorf("config: DB_DRIVER must be pgx or postgres, got %q", c.DB.Driver))
	}

	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("config: JWT_SECRET is required"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("config: JWT_TTL must be positive"))
	}
	if c.HistoryWindowDays < 1 || c.HistoryWindowDays > 366 {
		errs = append(errs, fmt.Errorf("config: HISTORY_WINDOW_DAYS must be in 1..366, got %d", c.HistoryWindowDays))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("config: RATE_LIMIT cannot be negative"))
	}
	if c.RateWindow <= 0 {
		errs = append(errs, errors.New("config: RATE_WINDOW must be positive"))
	}
	return errs
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
