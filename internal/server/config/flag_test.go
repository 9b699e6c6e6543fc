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
		{
			name: "all flags",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-d", "db", "-t", "3", "-l", "debug"},
			expected: &Config{
				ListenAddr:      "127.0.0.1:9090",
				DatabaseDSN:     "db",
				ShutdownTimeout: 3 * time.Second,
				LogLevel:        "debug",
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"cmd", "-config", "x.json", "-z", "1", "-a", ":1"},
			expected: &Config{ListenAddr: ":1"},
		},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "x"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
