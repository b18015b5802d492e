package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-d", "/var/lib/vigil", "-a", "x"},
			allowedFlags: []string{"-d", "-b"},
			want:         []string{"-d", "/var/lib/vigil"},
		},
		{
			name:         "equals form",
			args:         []string{"-b=postgres", "-d", "data"},
			allowedFlags: []string{"-b"},
			want:         []string{"-b=postgres"},
		},
		{
			name:         "equals form value may start with dash",
			args:         []string{"-config=--weird.json"},
			allowedFlags: []string{"-config"},
			want:         []string{"-config=--weird.json"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "trailing flag without value kept",
			args:         []string{"-m"},
			allowedFlags: []string{"-m"},
			want:         []string{"-m"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "-l", "debug"},
			allowedFlags: []string{"-c", "-l"},
			want:         []string{"-c", "-l", "debug"},
		},
		{
			name:         "repeated flag preserved in order",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:         "empty args",
			args:         nil,
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short form", func(t *testing.T) {
		os.Args = []string{"vigil", "-c", "/etc/vigil.json"}
		assert.Equal(t, "/etc/vigil.json", ConfigFileFlag())
	})

	t.Run("long form mixed with other flags", func(t *testing.T) {
		os.Args = []string{"vigil", "-b", "sqlite", "-config", "/etc/vigil.json"}
		assert.Equal(t, "/etc/vigil.json", ConfigFileFlag())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"vigil", "-d", "data"}
		assert.Empty(t, ConfigFileFlag())
	})

	t.Run("last wins", func(t *testing.T) {
		os.Args = []string{"vigil", "-c", "/a.json", "-config", "/b.json"}
		assert.Equal(t, "/b.json", ConfigFileFlag())
	})
}
