package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "~/.vigil", c.DataDir)
	assert.Equal(t, "sqlite", c.GeneralBackend)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 5*time.Second, c.OperationTimeout)
	assert.Empty(t, c.MetricsAddr)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"vigil"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "~/.vigil", cfg.DataDir)
	assert.Equal(t, 5*time.Second, cfg.OperationTimeout)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"data_dir":        "/var/lib/vigil",
		"general_backend": "postgres",
		"log_level":       "warn",
	})
	os.Args = []string{"vigil", "-c", path, "-l", "debug"}

	cfg := LoadConfig()

	assert.Equal(t, "/var/lib/vigil", cfg.DataDir)
	assert.Equal(t, "postgres", cfg.GeneralBackend)
	assert.Equal(t, "debug", cfg.LogLevel)
}
