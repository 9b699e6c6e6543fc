package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"3s"`, want: 3 * time.Second},
		{name: "composite string", in: `"1m30s"`, want: 90 * time.Second},
		{name: "nanoseconds", in: `1500000000`, want: 1500 * time.Millisecond},
		{name: "null", in: `null`, want: 0},
		{name: "garbage string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var cfg struct {
		Timeout  Duration `yaml:"timeout"`
		Interval Duration `yaml:"interval"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("timeout: 10s\ninterval: 2000000000\n"), &cfg))

	assert.Equal(t, 10*time.Second, cfg.Timeout.Duration)
	assert.Equal(t, 2*time.Second, cfg.Interval.Duration)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"5s"`, string(b))
}
