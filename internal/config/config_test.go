package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads every section", func(t *testing.T) {
		// Given: a complete config file
		path := writeConfig(t, `
log-level: debug
redis:
  enabled: true
  host: cache
  port: "6380"
ledger:
  recent-limit: 20
  show-recent: 3
console:
  hide-hints: true
`)

		// When: the config is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: every value comes from the file
		expected := &Config{
			LogLevel: "debug",
			Redis:    Redis{Enabled: true, Host: "cache", Port: "6380"},
			Ledger:   Ledger{RecentLimit: 20, ShowRecent: 3},
			Console:  Console{HideHints: true},
		}
		require.Equal(t, expected, conf)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Applies defaults", func(t *testing.T) {
		// Given: a file that only sets the log level
		path := writeConfig(t, "log-level: warn\n")

		// When: the config is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the rest falls back to defaults
		assert.Equal(t, "warn", conf.LogLevel)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 100, conf.Ledger.RecentLimit)
		assert.Equal(t, 5, conf.Ledger.ShowRecent)
		assert.False(t, conf.Console.HideHints)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file and environment overrides
		path := writeConfig(t, "redis:\n  host: cache\n")
		t.Setenv("REVERSI_REDIS_HOST", "redis.internal")
		t.Setenv("REVERSI_REDIS_ENABLED", "true")

		// When: the config is loaded
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the environment wins
		assert.Equal(t, "redis.internal", conf.Redis.Host)
		assert.True(t, conf.Redis.Enabled)
	})

	t.Run("Shipped config.yml", func(t *testing.T) {
		// When: the config at the repository root is loaded
		conf, err := Load(filepath.Join("..", "..", "config.yml"))
		require.NoError(t, err)

		// Then: every documented key is picked up
		expected := &Config{
			LogLevel: "info",
			Redis:    Redis{Enabled: false, Host: "localhost", Port: "6379"},
			Ledger:   Ledger{RecentLimit: 100, ShowRecent: 5},
			Console:  Console{HideHints: false},
		}
		require.Equal(t, expected, conf)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
	})
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
	})

	assert.NotPanics(t, func() {
		conf := MustLoad(writeConfig(t, "log-level: info\n"))
		assert.Equal(t, "info", conf.LogLevel)
	})
}
