package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "~/.quill", cfg.DataDir)
	assert.Equal(t, 5*time.Second, cfg.StatusTimeout)
	assert.True(t, cfg.History.Enabled)
	assert.True(t, cfg.History.RestoreCursor)
	assert.Equal(t, 200, cfg.History.MaxSaves)
	assert.Nil(t, cfg.LogFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("overrides only given keys", func(t *testing.T) {
		path := writeConfig(t, `
data_dir: /var/quill
status_timeout: 2s
history:
  restore_cursor: false
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/var/quill", cfg.DataDir)
		assert.Equal(t, 2*time.Second, cfg.StatusTimeout)
		assert.False(t, cfg.History.RestoreCursor)
		assert.True(t, cfg.History.Enabled)
		assert.Equal(t, 200, cfg.History.MaxSaves)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("empty log_file disables logging", func(t *testing.T) {
		path := writeConfig(t, `log_file: ""`)
		cfg, err := Load(path)
		require.NoError(t, err)
		logPath, err := cfg.LogPath()
		require.NoError(t, err)
		assert.Empty(t, logPath)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := writeConfig(t, "data_dir: [unterminated")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := writeConfig(t, "log_level: loud")
		_, err := Load(path)
		assert.ErrorContains(t, err, "log_level")

		path = writeConfig(t, "history:\n  max_saves: -1")
		_, err = Load(path)
		assert.ErrorContains(t, err, "max_saves")
	})
}

func TestPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Run("expands home", func(t *testing.T) {
		got, err := ExpandHome("~/.quill")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".quill"), got)

		got, err = ExpandHome("/abs/path")
		require.NoError(t, err)
		assert.Equal(t, "/abs/path", got)

		got, err = ExpandHome("~user/x")
		require.NoError(t, err)
		assert.Equal(t, "~user/x", got)
	})

	t.Run("log and history live in data dir", func(t *testing.T) {
		cfg := Default()
		cfg.DataDir = "/data"
		logPath, err := cfg.LogPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/data", "quill.log"), logPath)

		dbPath, err := cfg.HistoryPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/data", "history.db"), dbPath)
	})

	t.Run("explicit log file wins", func(t *testing.T) {
		cfg := Default()
		custom := "/tmp/q.log"
		cfg.LogFile = &custom
		logPath, err := cfg.LogPath()
		require.NoError(t, err)
		assert.Equal(t, custom, logPath)
	})
}
