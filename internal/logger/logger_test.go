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
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, expected := range cases {
		assert.Equal(t, expected, ParseLevel(input), "level %q", input)
	}
}

func TestNewWritesJSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	log := New(&out, slog.LevelInfo, false)
	log.Debug("hidden")
	log.Info("rendered", "page", "home")

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "rendered", record["msg"])
	assert.Equal(t, "home", record["page"])
	assert.Contains(t, record, "source")
}

func TestToJournalKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "HTTP_STATUS", toJournalKey("http.status"))
	assert.Equal(t, "PAGE_KEY2", toJournalKey("page-key2"))
}
