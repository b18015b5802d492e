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

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"general_backend":   "s3",
		"s3_bucket":         "kiosk",
		"s3_access_key":     "minio",
		"s3_secret_key":     "minio123",
		"operation_timeout": "10s",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{DataDir: "/keep/me"}
		parseJson(cfg)

		assert.Equal(t, "s3", cfg.GeneralBackend)
		assert.Equal(t, "kiosk", cfg.S3Bucket)
		assert.Equal(t, "minio", cfg.S3AccessKey)
		assert.Equal(t, "minio123", cfg.S3SecretKey)
		assert.Equal(t, 10*time.Second, cfg.OperationTimeout)
		assert.Equal(t, "/keep/me", cfg.DataDir)
	})

	t.Run("integer nanoseconds", func(t *testing.T) {
		p := writeTempJSON(t, dir, "ns.json", map[string]any{"operation_timeout": int64(2 * time.Second)})
		os.Args = []string{"testbin", "-c", p}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, 2*time.Second, cfg.OperationTimeout)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{DataDir: "defaults", OperationTimeout: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "defaults", cfg.DataDir)
		assert.Equal(t, 42*time.Second, cfg.OperationTimeout)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
