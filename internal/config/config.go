package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// DefaultDatabaseFile is used when nothing else is configured
const DefaultDatabaseFile = "customers.db"

type StoreCfg struct {
	File string `env:"CUSTOMERS_DB_FILE" envDefault:"customers.db"`
}

type LogCfg struct {
	Level string `env:"CUSTOMERS_LOG_LEVEL" envDefault:"warn"`
}

// Config is passed explicitly to every entry point
type Config struct {
	StoreCfg StoreCfg
	LogCfg   LogCfg
}

func Build() (Config, error) {
	return build(env.Options{})
}

func build(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	if cfg.StoreCfg.File == "" {
		cfg.StoreCfg.File = DefaultDatabaseFile
	}
	return cfg, nil
}

// Usage describes optional environment overrides for command help
func Usage() string {
	return `Every setting has a default, so no environment is required.
Optional environment overrides:
  CUSTOMERS_DB_FILE    path of the customer database file (default "customers.db")
  CUSTOMERS_LOG_LEVEL  diagnostics level written to stderr: panic, fatal, error, warn, info, debug, trace (default "warn")`
}
