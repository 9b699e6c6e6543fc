package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("json", func(t *testing.T) {
		path := writeTemp(t, "cfg.json", `{
			"database_path": "/var/lib/fuel.db",
			"sheets_url": "https://script.example/exec",
			"request_timeout": "20s",
			"archive": {"bucket": "fuel", "prefix": "x/"}
		}`)
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "/var/lib/fuel.db", cfg.DatabasePath)
		assert.Equal(t, "https://script.example/exec", cfg.SheetsURL)
		assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 30*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, "fuel", cfg.Archive.Bucket)
		assert.Equal(t, "x/", cfg.Archive.Prefix)
		assert.Equal(t, "us-east-1", cfg.Archive.Region)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeTemp(t, "cfg.yaml", `
database_path: fuel.db
online_check_interval: 1m
assume_yes: true
log_level: debug
archive:
  endpoint: http://127.0.0.1:9000
`)
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "fuel.db", cfg.DatabasePath)
		assert.Equal(t, time.Minute, cfg.OnlineCheckInterval)
		assert.True(t, cfg.AssumeYes)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "http://127.0.0.1:9000", cfg.Archive.Endpoint)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{DatabasePath: "keep.db", RequestTimeout: 42 * time.Second}
		parseFile(cfg)

		assert.Equal(t, "keep.db", cfg.DatabasePath)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid file → panics", func(t *testing.T) {
		bad := writeTemp(t, "bad.json", `{ this is not valid json`)
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(t.TempDir(), "nope.json")}
		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
