package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestInitAt_WritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := filepath.Join(t.TempDir(), "logs")
	closeLog, err := InitAt(dir, "warn")
	require.NoError(t, err)

	slog.Info("hidden below warn")
	slog.Warn("move failed", "card_id", "42")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(filepath.Join(dir, "funil.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "move failed")
	assert.Contains(t, string(data), "card_id=42")
	assert.NotContains(t, string(data), "hidden below warn")
}
