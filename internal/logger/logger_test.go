package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  slog.Level
		found bool
	}{
		{"debug", slog.LevelDebug, true},
		{" WARN ", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", slog.LevelInfo, false},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.found, ok, tt.in)
	}
}

func TestInit_ProductionWritesJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := Init(Options{AppName: "rincon", Output: &buf})

	log.Debug("hidden")
	log.Info("visible", "user_id", "u1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "rincon", entry["app"])
	assert.Equal(t, "u1", entry["user_id"])
}

func TestInit_LevelOverride(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := Init(Options{Development: true, Level: "error", Output: &buf})

	log.Warn("dropped")
	assert.Empty(t, buf.String())

	log.Error("kept")
	assert.Contains(t, buf.String(), "kept")
}
