package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marketplace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	require.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "memory", cfg.Store.Driver)
	require.Equal(t, "store", cfg.Ownership.Source)
	require.Equal(t, 5*time.Second, cfg.Ownership.Timeout)
	require.Equal(t, "none", cfg.Events.Driver)
	require.Equal(t, "marketplace:auctions", cfg.Events.Stream)
	require.Equal(t, "marketplace.auctions", cfg.Events.SubjectPrefix)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  read_timeout: 3s
store:
  driver: SQLite
  dsn: file:auctions.db
  seed: true
events:
  driver: redis
  redis_addr: redis:6379
`)
	t.Setenv("MARKETPLACE_SERVER_HOST", "127.0.0.1")
	t.Setenv("MARKETPLACE_AUTH_GATEWAY_SECRET", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	require.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "sqlite", cfg.Store.Driver)
	require.Equal(t, "file:auctions.db", cfg.Store.DSN)
	require.True(t, cfg.Store.Seed)
	require.Equal(t, "s3cret", cfg.Auth.GatewaySecret)
	require.Equal(t, "redis", cfg.Events.Driver)
	require.Equal(t, "redis:6379", cfg.Events.RedisAddr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown_store", body: "store:\n  driver: mongo\n"},
		{name: "sql_store_without_dsn", body: "store:\n  driver: postgres\n"},
		{name: "remote_ownership_without_url", body: "ownership:\n  source: remote\n"},
		{name: "remote_ownership_bad_url", body: "ownership:\n  source: remote\n  base_url: not a url\n"},
		{name: "unknown_events_driver", body: "events:\n  driver: kafka\n"},
		{name: "port_out_of_range", body: "server:\n  port: 70000\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
