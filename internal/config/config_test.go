package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CHECKVAULT_CONFIG_PATH", "CHECKVAULT_SERVER_HOST", "CHECKVAULT_SERVER_PORT",
		"CHECKVAULT_TRANSPORT", "CHECKVAULT_AUTH_ENABLED", "CHECKVAULT_BOOTSTRAP_TOKEN",
		"CHECKVAULT_BOOTSTRAP_OWNER", "CHECKVAULT_DB_DRIVER", "CHECKVAULT_DB_PATH",
		"CHECKVAULT_DB_DSN", "CHECKVAULT_SESSION_IDLE_TIMEOUT", "CHECKVAULT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "sqlite", cfg.DB.Driver)
	require.Equal(t, "checkvault.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.Auth.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHECKVAULT_SERVER_PORT", "9090")
	t.Setenv("CHECKVAULT_TRANSPORT", "stdio")
	t.Setenv("CHECKVAULT_AUTH_ENABLED", "true")
	t.Setenv("CHECKVAULT_BOOTSTRAP_TOKEN", "tok")
	t.Setenv("CHECKVAULT_DB_DRIVER", "postgres")
	t.Setenv("CHECKVAULT_DB_DSN", "postgres://localhost/checkvault")
	t.Setenv("CHECKVAULT_SESSION_IDLE_TIMEOUT", "5m")
	t.Setenv("CHECKVAULT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.True(t, cfg.Auth.Enabled)
	require.Equal(t, "tok", cfg.Auth.BootstrapToken)
	require.Equal(t, "admin", cfg.Auth.BootstrapOwner)
	require.Equal(t, "postgres", cfg.DB.Driver)
	require.Equal(t, "postgres://localhost/checkvault", cfg.DB.DSN)
	require.Equal(t, 5*time.Minute, cfg.Session.IdleTimeout)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7000
db:
  path: /var/lib/checkvault/data.db
session:
  idle_timeout: 1h
`), 0o600))
	t.Setenv("CHECKVAULT_CONFIG_PATH", path)
	t.Setenv("CHECKVAULT_SERVER_PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7001, cfg.Server.Port)
	require.Equal(t, "/var/lib/checkvault/data.db", cfg.DB.Path)
	require.Equal(t, time.Hour, cfg.Session.IdleTimeout)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHECKVAULT_SERVER_PORT", "eighty")
	_, err := Load()
	require.ErrorContains(t, err, "CHECKVAULT_SERVER_PORT")

	clearEnv(t)
	t.Setenv("CHECKVAULT_AUTH_ENABLED", "maybe")
	_, err = Load()
	require.ErrorContains(t, err, "CHECKVAULT_AUTH_ENABLED")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }, "out of range"},
		{"transport", func(c *Config) { c.Transport.Mode = "grpc" }, "unknown transport"},
		{"driver", func(c *Config) { c.DB.Driver = "mysql" }, "unknown db driver"},
		{"postgres dsn", func(c *Config) { c.DB.Driver = "postgres" }, "postgres requires db dsn"},
		{"sqlite path", func(c *Config) { c.DB.Path = "" }, "sqlite requires db path"},
		{"idle", func(c *Config) { c.Session.IdleTimeout = -time.Second }, "idle timeout"},
		{"bootstrap owner", func(c *Config) { c.Auth.BootstrapToken = "t"; c.Auth.BootstrapOwner = "" }, "requires an owner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
	require.NoError(t, Default().Validate())
}
