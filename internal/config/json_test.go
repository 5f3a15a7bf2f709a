package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"storage":           "postgres",
		"sqlite_path":       "vault.db",
		"postgres_dsn":      "postgres://u:p@db/notes",
		"s3_user":           "user",
		"s3_password":       "password",
		"s3_bucket":         "bucket",
		"s3_region":         "region",
		"s3_endpoint":       "endpoint",
		"s3_prefix":         "prefix/",
		"capacity":          "10MiB",
		"max_upload":        2048,
		"operation_timeout": "1m",
		"log_format":        "zap",
		"admin_username":    "root",
		"admin_email":       "root@example.org",
		"admin_password":    "toor",
	})

	t.Run("loads every field", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", full}))

		assert.Equal(t, "postgres", cfg.Storage)
		assert.Equal(t, "vault.db", cfg.SQLitePath)
		assert.Equal(t, "postgres://u:p@db/notes", cfg.PostgresDSN)
		assert.Equal(t, "user", cfg.S3User)
		assert.Equal(t, "password", cfg.S3Password)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "endpoint", cfg.S3Endpoint)
		assert.Equal(t, "prefix/", cfg.S3Prefix)
		assert.Equal(t, int64(10<<20), cfg.Capacity)
		assert.Equal(t, int64(2048), cfg.MaxUpload)
		assert.Equal(t, time.Minute, cfg.OperationTimeout)
		assert.Equal(t, "zap", cfg.LogFormat)
		assert.Equal(t, "root", cfg.AdminUsername)
		assert.Equal(t, "root@example.org", cfg.AdminEmail)
		assert.Equal(t, "toor", cfg.AdminPassword)
	})

	t.Run("absent keys keep earlier values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"capacity": 0})

		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-c", partial}))

		want := defaults()
		want.Capacity = 0
		assert.Equal(t, want, cfg)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-s", "memory"}))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJSON(defaults(), []string{"-c", bad}))
	})

	t.Run("invalid size", func(t *testing.T) {
		bad := writeTempJSON(t, dir, "size.json", map[string]any{"capacity": "huge"})
		require.Error(t, parseJSON(defaults(), []string{"-c", bad}))
	})
}

func TestSize_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Size
	}{
		{`1024`, 1024},
		{`"1024"`, 1024},
		{`"4MiB"`, 4 << 20},
		{`"5 MB"`, 5_000_000},
	}
	for _, tt := range tests {
		var s Size
		require.NoError(t, json.Unmarshal([]byte(tt.in), &s), tt.in)
		assert.Equal(t, tt.want, s, tt.in)
	}

	var s Size
	require.Error(t, json.Unmarshal([]byte(`true`), &s))
}
