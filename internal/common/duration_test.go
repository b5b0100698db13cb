package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type intervals struct {
	Interval Duration `json:"interval" yaml:"interval" toml:"interval"`
}

func TestDuration_UnmarshalText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{input: "100ns", expected: 100 * time.Nanosecond},
		{input: "500us", expected: 500 * time.Microsecond},
		{input: "250ms", expected: 250 * time.Millisecond},
		{input: "30s", expected: 30 * time.Second},
		{input: "10m", expected: 10 * time.Minute},
		{input: "1h30m45s", expected: time.Hour + 30*time.Minute + 45*time.Second},
		{input: "0s"},
		{input: "1d", wantErr: true},
		{input: "", wantErr: true},
		{input: "ten minutes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expected, d.Duration)
		})
	}
}

func TestDuration_ConfigFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		decode func([]byte, any) error
	}{
		{name: "json", input: `{"interval":"1m30s"}`, decode: json.Unmarshal},
		{name: "yaml", input: "interval: 1m30s\n", decode: yaml.Unmarshal},
		{name: "toml", input: "interval = \"1m30s\"\n", decode: toml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var cfg intervals
			require.NoError(t, tt.decode([]byte(tt.input), &cfg))
			require.Equal(t, 90*time.Second, cfg.Interval.Duration)
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	t.Parallel()

	original := intervals{Interval: NewDuration(2*time.Hour + 5*time.Second)}

	data, err := json.Marshal(original)
	require.NoError(t, err)
	require.JSONEq(t, `{"interval":"2h0m5s"}`, string(data))

	data, err = yaml.Marshal(original)
	require.NoError(t, err)

	var decoded intervals
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Equal(t, original, decoded)
}

func TestDuration_JSONSchema(t *testing.T) {
	t.Parallel()

	schema := Duration{}.JSONSchema()
	require.Equal(t, "string", schema.Type)
	require.Equal(t, "Duration", schema.Title)
	require.NotEmpty(t, schema.Examples)
}
