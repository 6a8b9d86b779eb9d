package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":    slog.LevelDebug,
		"dev":      slog.LevelDebug,
		" INFO ":   slog.LevelInfo,
		"warning":  slog.LevelWarn,
		"prod":     slog.LevelError,
		"nonsense": slog.LevelWarn,
		"":         slog.LevelWarn,
	}
	for name, want := range tests {
		require.Equal(t, want, ParseLevel(name, slog.LevelWarn), name)
	}
}

func TestNew_JSON(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	New(&buf, slog.LevelInfo, "json").Info("Room created", "room", "r1")

	var record map[string]any
	req.NoError(json.Unmarshal(buf.Bytes(), &record))
	req.Equal("Room created", record["msg"])
	req.Equal("r1", record["room"])
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	New(&buf, slog.LevelWarn, "text").Info("hidden")

	require.Empty(t, buf.String())
}
