package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Schema modes applied at boot.
const (
	SchemaEnsure = "ensure"
	SchemaReset  = "reset"
	SchemaNone   = "none"
)

const defaultPostgresURL = "postgres://localhost/acme_reservation_planner?sslmode=disable"

// DefaultJWTSecret is the placeholder signing secret; it is refused once an
// admin password enables login.
const DefaultJWTSecret = "change-me-in-prod"

type Config struct {
	Port         int
	DatabaseType string
	DatabaseURL  string

	// mysql DSN parts, used only when DatabaseURL is empty
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	SchemaMode string
	SeedFile   string

	JWTSecret     string
	AdminUsername string
	AdminPassword string

	LogLevel string
}

// Load reads a .env file when present, then the process environment.
// Variables already set in the environment are never overridden by .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseType: strings.ToLower(getenv("DATABASE_TYPE", "postgres")),
		DatabaseURL:  os.Getenv("DATABASE_URL"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "3306"),
		DBName:     getenv("DB_NAME", "acme_reservation_planner"),
		DBUser:     getenv("DB_USER", "appuser"),
		DBPassword: getenv("DB_PASSWORD", "apppass"),

		SchemaMode: strings.ToLower(getenv("SCHEMA_MODE", SchemaEnsure)),
		SeedFile:   os.Getenv("SEED_FILE"),

		JWTSecret:     getenv("JWT_SECRET", DefaultJWTSecret),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		LogLevel: strings.ToLower(getenv("LOG_LEVEL", "info")),
	}

	var err error
	if cfg.Port, err = atoi("PORT", 3000); err != nil {
		return Config{}, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("PORT out of range: %d", cfg.Port)
	}
	if cfg.MaxOpenConns, err = atoi("DB_MAX_OPEN_CONNS", 25); err != nil {
		return Config{}, err
	}
	if cfg.MaxIdleConns, err = atoi("DB_MAX_IDLE_CONNS", 10); err != nil {
		return Config{}, err
	}
	if cfg.ConnMaxLifetime, err = time.ParseDuration(getenv("DB_CONN_MAX_LIFETIME", "1h")); err != nil {
		return Config{}, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	switch cfg.DatabaseType {
	case "postgres", "mysql", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_TYPE %q (want postgres, mysql or sqlite)", cfg.DatabaseType)
	}
	switch cfg.SchemaMode {
	case SchemaEnsure, SchemaReset, SchemaNone:
	default:
		return Config{}, fmt.Errorf("unsupported SCHEMA_MODE %q (want ensure, reset or none)", cfg.SchemaMode)
	}
	if cfg.AdminPassword != "" && cfg.JWTSecret == DefaultJWTSecret {
		return Config{}, errors.New("JWT_SECRET must be set when ADMIN_PASSWORD enables admin login")
	}

	return cfg, nil
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DatabaseType {
	case "mysql":
		m := mysql.NewConfig()
		m.User = c.DBUser
		m.Passwd = c.DBPassword
		m.Net = "tcp"
		m.Addr = c.DBHost + ":" + c.DBPort
		m.DBName = c.DBName
		m.ParseTime = true
		m.Loc = time.UTC
		m.Params = map[string]string{"charset": "utf8mb4"}
		return m.FormatDSN()
	case "sqlite":
		return "file:reservations.db?_foreign_keys=on"
	default:
		return defaultPostgresURL
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + strconv.Itoa(c.Port) }

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %q", k, v)
	}
	return n, nil
}
