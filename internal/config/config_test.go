package config

import (
	"testing"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaults(t *testing.T) {
	cfg, err := build(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, DefaultDatabaseFile, cfg.StoreCfg.File)
	require.Equal(t, "warn", cfg.LogCfg.Level)
}

func TestBuildOverrides(t *testing.T) {
	cfg, err := build(env.Options{Environment: map[string]string{
		"CUSTOMERS_DB_FILE":   "/var/lib/intake/customers.db",
		"CUSTOMERS_LOG_LEVEL": "debug",
	}})
	require.NoError(t, err)
	require.Equal(t, "/var/lib/intake/customers.db", cfg.StoreCfg.File)
	require.Equal(t, "debug", cfg.LogCfg.Level)
}

func TestBuildEmptyFileFallsBackToDefault(t *testing.T) {
	cfg, err := build(env.Options{Environment: map[string]string{"CUSTOMERS_DB_FILE": ""}})
	require.NoError(t, err)
	require.Equal(t, DefaultDatabaseFile, cfg.StoreCfg.File)
}

func TestUsageListsOverrides(t *testing.T) {
	usage := Usage()
	require.Contains(t, usage, "CUSTOMERS_DB_FILE")
	require.Contains(t, usage, `default "customers.db"`)
	require.Contains(t, usage, "CUSTOMERS_LOG_LEVEL")
	require.Contains(t, usage, `default "warn"`)
}
