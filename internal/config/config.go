// Package config loads rowdeck's settings from the environment.
//
// Variables use the ROWDECK_ prefix and "__" between nesting levels, so
// ROWDECK_STORAGE__SQLITE__PATH maps to Config.Storage.SQLite.Path. A .env
// file in the working directory is loaded first if present.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hrutik5321/rowdeck/internal/items"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix = "ROWDECK_"

	EnvLocal       = "local"
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverSQLite   = "sqlite"
	DriverSQLite3  = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	Env     string        `koanf:"env" validate:"required,oneof=local development production"`
	Log     LogConfig     `koanf:"log" validate:"required"`
	Storage StorageConfig `koanf:"storage" validate:"required"`
	View    ViewConfig    `koanf:"view"`
}

// ViewConfig holds the sort order the table opens with.
type ViewConfig struct {
	SortField     string `koanf:"sort_field"`
	SortDirection string `koanf:"sort_direction"`
}

// LogConfig controls where logs go and how much is written. An empty File
// discards all output.
type LogConfig struct {
	Level string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
	File  string `koanf:"file"`
}

type StorageConfig struct {
	Driver   string         `koanf:"driver" validate:"required,oneof=sqlite sqlite3 postgres"`
	SQLite   SQLiteConfig   `koanf:"sqlite"`
	Postgres PostgresConfig `koanf:"postgres"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port" validate:"omitempty,numeric"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
	SSLMode  string `koanf:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
}

// Default returns the configuration used when no variables are set.
func Default() *Config {
	return &Config{
		Env: EnvLocal,
		Log: LogConfig{
			Level: "info",
			File:  "rowdeck.log",
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			SQLite: SQLiteConfig{Path: "rowdeck.db"},
			Postgres: PostgresConfig{
				Port:    "5432",
				SSLMode: "disable",
			},
		},
		View: ViewConfig{
			SortField:     string(items.SortByID),
			SortDirection: string(items.Asc),
		},
	}
}

// Load reads ROWDECK_* variables over the defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks struct tags, then the rules that depend on the driver.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Storage.Driver {
	case DriverSQLite, DriverSQLite3:
		if strings.TrimSpace(c.Storage.SQLite.Path) == "" {
			return errors.New("storage.sqlite.path is required for the sqlite drivers")
		}
	case DriverPostgres:
		pg := c.Storage.Postgres
		var missing []string
		if pg.Host == "" {
			missing = append(missing, "host")
		}
		if pg.User == "" {
			missing = append(missing, "user")
		}
		if pg.Database == "" {
			missing = append(missing, "database")
		}
		if len(missing) > 0 {
			return errors.New("storage.postgres requires: " + strings.Join(missing, ", "))
		}
	}

	if _, _, err := c.InitialSort(); err != nil {
		return err
	}

	return nil
}

// InitialSort parses the configured sort field and direction.
func (c *Config) InitialSort() (items.SortField, items.SortDirection, error) {
	field, err := items.ParseSortField(c.View.SortField)
	if err != nil {
		return "", "", fmt.Errorf("view.sort_field: %w", err)
	}
	dir, err := items.ParseSortDirection(c.View.SortDirection)
	if err != nil {
		return "", "", fmt.Errorf("view.sort_direction: %w", err)
	}
	return field, dir, nil
}

// ROWDECK_STORAGE__SQLITE__PATH -> storage.sqlite.path
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
