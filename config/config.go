// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envFile = "config/.env"

	// passwordFileKey is the entry read from postgres.password_file.
	passwordFileKey = "PGPASSWORD"
)

// NewConfig loads configuration from environment using viper with typed defaults and validation.
func NewConfig() (*Config, error) {
	return load(envFile)
}

func load(dotenv string) (*Config, error) {
	v := viper.New()
	if envMap, err := godotenv.Read(dotenv); err == nil {
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Postgres.loadPasswordFile(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("http.request_timeout", 3*time.Second)

	v.SetDefault("storage.backend", BackendPostgres)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.password_file", "")
	v.SetDefault("postgres.db_name", "rubygems")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.migrate_timeout", 10*time.Second)
	v.SetDefault("postgres.query_timeout", 2*time.Second)
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)

	v.SetDefault("sqlite.path", "data/push_reviews.db")

	v.SetDefault("review.sample_percent", 30)

	v.SetDefault("report.sampled", false)
	v.SetDefault("report.sample_percent", 30)
	v.SetDefault("report.cache_ttl", time.Duration(0))

	v.SetDefault("diff.base_url", "https://my.diffend.io/gems")
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"logging.level",
		"server.host",
		"server.port",
		"server.shutdown_timeout",
		"http.request_timeout",
		"storage.backend",
		"postgres.host",
		"postgres.port",
		"postgres.user",
		"postgres.password",
		"postgres.password_file",
		"postgres.db_name",
		"postgres.ssl_mode",
		"postgres.migrate_timeout",
		"postgres.query_timeout",
		"postgres.max_conns",
		"postgres.min_conns",
		"sqlite.path",
		"review.sample_percent",
		"report.sampled",
		"report.sample_percent",
		"report.cache_ttl",
		"diff.base_url",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

// loadPasswordFile overrides Password with the PGPASSWORD entry of PasswordFile.
func (p *PostgresConfig) loadPasswordFile() error {
	if p.PasswordFile == "" {
		return nil
	}
	entries, err := godotenv.Read(p.PasswordFile)
	if err != nil {
		return fmt.Errorf("read postgres password file: %w", err)
	}
	pw, ok := entries[passwordFileKey]
	if !ok || pw == "" {
		return fmt.Errorf("postgres password file %s has no %s entry", p.PasswordFile, passwordFileKey)
	}
	p.Password = strings.TrimSpace(pw)
	return nil
}
