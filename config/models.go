package config

import (
	"errors"
	"fmt"
	"time"
)

// Storage backends understood by repository.New.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Review   ReviewConfig   `mapstructure:"review"`
	Report   ReportConfig   `mapstructure:"report"`
	Diff     DiffConfig     `mapstructure:"diff"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("server.port is required")
	}
	switch c.Storage.Backend {
	case BackendPostgres:
		if c.Postgres.User == "" || c.Postgres.Password == "" || c.Postgres.DBName == "" {
			return errors.New("postgres credentials are required")
		}
		if c.Postgres.Host == "" {
			return errors.New("postgres.host is required")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite.path is required")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	if !validPercent(c.Review.SamplePercent) {
		return fmt.Errorf("review.sample_percent must be within 1..100, got %d", c.Review.SamplePercent)
	}
	if c.Report.Sampled && !validPercent(c.Report.SamplePercent) {
		return fmt.Errorf("report.sample_percent must be within 1..100, got %d", c.Report.SamplePercent)
	}
	if c.Report.CacheTTL < 0 {
		return errors.New("report.cache_ttl must not be negative")
	}
	if c.Diff.BaseURL == "" {
		return errors.New("diff.base_url is required")
	}
	return nil
}

func validPercent(p int) bool {
	return p >= 1 && p <= 100
}

// ServerAddr returns host:port for HTTP server binding.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HTTPConfig contains transport settings.
type HTTPConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
}

// PostgresConfig describes database connection parameters.
type PostgresConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	PasswordFile   string        `mapstructure:"password_file"`
	DBName         string        `mapstructure:"db_name"`
	SSLMode        string        `mapstructure:"ssl_mode"`
	MigrateTimeout time.Duration `mapstructure:"migrate_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	MaxConns       int32         `mapstructure:"max_conns"`
	MinConns       int32         `mapstructure:"min_conns"`
}

// DSN returns a Postgres connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// SQLiteConfig describes the local database file.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// ReviewConfig tunes the pending item selector.
type ReviewConfig struct {
	// SamplePercent is the Bernoulli sample size drawn before picking the oldest candidate.
	SamplePercent int `mapstructure:"sample_percent"`
}

// ReportConfig tunes the progress report.
type ReportConfig struct {
	// Sampled switches the report from an exact aggregate to a sampled estimate.
	Sampled       bool          `mapstructure:"sampled"`
	SamplePercent int           `mapstructure:"sample_percent"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
}

// DiffConfig points at the external diff viewer.
type DiffConfig struct {
	BaseURL string `mapstructure:"base_url"`
}
