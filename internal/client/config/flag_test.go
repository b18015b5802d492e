package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "storage flags", args: []string{"cmd", "-d", "/tmp/v", "-b", "s3", "-s3-bucket", "kiosk", "-s3-endpoint", "http://minio:9000", "-t", "10"},
			expected: &Config{DataDir: "/tmp/v", GeneralBackend: "s3", S3Bucket: "kiosk", S3BaseEndpoint: "http://minio:9000", OperationTimeout: 10 * time.Second}},
		{name: "unknown flags ignored", args: []string{"cmd", "-c", "cfg.json", "-x", "1", "-m", ":9100", "-l=debug"},
			expected: &Config{MetricsAddr: ":9100", LogLevel: "debug"}},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
