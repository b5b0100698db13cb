package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testLoggingConfig struct {
	defaultLevel string
	components   map[string]string
	file         *FileConfig
}

func (c testLoggingConfig) GetComponentLevel(component string) string {
	if level, ok := c.components[component]; ok {
		return level
	}
	return c.defaultLevel
}

func (c testLoggingConfig) GetDefaultLevel() string { return c.defaultLevel }
func (c testLoggingConfig) IsDevelopment() bool     { return false }
func (c testLoggingConfig) GetFile() *FileConfig    { return c.file }

// readEntries decodes the JSON lines written to a log file.
func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())

	return entries
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level       string
		development bool
		wantErr     bool
	}{
		{level: "debug", development: true},
		{level: "info"},
		{level: "warn", development: true},
		{level: "error"},
		{level: "verbose", wantErr: true},
		{level: "", development: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			l, err := NewLogger(tt.level, tt.development)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, l)
				return
			}

			require.NoError(t, err)
			expected := tt.level
			if expected == "" {
				expected = "info"
			}
			require.Equal(t, expected, l.GetLevel())
		})
	}
}

func TestLogger_SetLevelIsShared(t *testing.T) {
	t.Parallel()

	base, err := NewLogger("info", false)
	require.NoError(t, err)

	index := base.WithComponent("chain-index")
	pruner := base.WithComponent("pruner")
	require.Equal(t, "chain-index", index.GetComponent())
	require.Equal(t, "pruner", pruner.GetComponent())
	require.Empty(t, base.GetComponent())

	require.NoError(t, pruner.SetLevel("debug"))
	for _, l := range []*Logger{base, index, pruner} {
		require.Equal(t, "debug", l.GetLevel())
	}

	require.Error(t, base.SetLevel("loud"))
	require.Equal(t, "debug", base.GetLevel())
}

func TestNewNopLogger(t *testing.T) {
	t.Parallel()

	l := NewNopLogger()
	l.Infow("discarded", "height", 1)
	require.NoError(t, l.Close())
	require.Equal(t, "fatal", l.GetLevel())
}

func TestNewComponentLogger(t *testing.T) {
	t.Parallel()

	l := NewComponentLogger("scheduler", "warn", true)
	require.Equal(t, "scheduler", l.GetComponent())
	require.Equal(t, "warn", l.GetLevel())

	require.Panics(t, func() { NewComponentLogger("scheduler", "chatty", false) })
}

func TestNewComponentLoggerFromConfig(t *testing.T) {
	t.Parallel()

	cfg := testLoggingConfig{
		defaultLevel: "info",
		components:   map[string]string{"pruner": "debug", "api": "error", "events": ""},
	}

	tests := []struct {
		component string
		cfg       LoggingConfig
		expected  string
	}{
		{component: "pruner", cfg: cfg, expected: "debug"},
		{component: "api", cfg: cfg, expected: "error"},
		{component: "chain-index", cfg: cfg, expected: "info"},
		{component: "events", cfg: cfg, expected: "info"},
		{component: "importer", cfg: nil, expected: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.component, func(t *testing.T) {
			t.Parallel()

			l := NewComponentLoggerFromConfig(tt.component, tt.cfg)
			require.Equal(t, tt.component, l.GetComponent())
			require.Equal(t, tt.expected, l.GetLevel())
		})
	}
}

func TestNewComponentLoggerFromConfig_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "headerindexor.log")
	cfg := testLoggingConfig{
		defaultLevel: "info",
		file:         &FileConfig{Filename: path, MaxSizeMB: 1, MaxBackups: 1},
	}

	l := NewComponentLoggerFromConfig("pruner", cfg)
	l.Infow("chain pruned", "blocks", 3)
	l.Debug("hidden")
	_ = l.Sync()

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	require.Equal(t, "chain pruned", entries[0]["msg"])
	require.Equal(t, "pruner", entries[0]["component"])
	require.InDelta(t, 3, entries[0]["blocks"], 0)
}

func TestNewFileLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "headerindexor.log")

	l, err := NewFileLogger("warn", false, &FileConfig{Filename: path, MaxSizeMB: 1})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept warning")
	require.NoError(t, l.SetLevel("info"))
	l.Info("kept info")
	_ = l.Sync()

	entries := readEntries(t, path)
	require.Len(t, entries, 2)
	require.Equal(t, "kept warning", entries[0]["msg"])
	require.Equal(t, "kept info", entries[1]["msg"])
}

func TestNewFileLogger_EmptyFilename(t *testing.T) {
	t.Parallel()

	l, err := NewFileLogger("info", false, &FileConfig{})
	require.NoError(t, err)
	require.Equal(t, "info", l.GetLevel())
}

func TestSetDefaultLogger(t *testing.T) {
	custom := NewNopLogger().WithComponent("custom")
	SetDefaultLogger(custom)
	require.Same(t, custom, GetDefaultLogger())

	SetDefaultLogger(nil)
	require.Same(t, custom, GetDefaultLogger())
}
