// Package logger configures log/slog for the site. Logs go to stdout as JSON
// with source locations, and additionally to the systemd journal when the
// process runs as a systemd service.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Setup installs the default slog logger and returns it.
func Setup(level slog.Level) *slog.Logger {
	logger := New(os.Stdout, level, isSystemdService())
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing JSON to w. With journal set, records are also
// sent to the systemd journal; if the journal is unreachable, a warning is
// logged and only w is used.
func New(w io.Writer, level slog.Level, journal bool) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	if !journal {
		return slog.New(jsonHandler)
	}

	journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
		Level: level,
		ReplaceGroup: func(key string) string {
			return toJournalKey(key)
		},
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
	if err != nil {
		record := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
		record.AddAttrs(slog.Any("error", err))
		_ = jsonHandler.Handle(context.Background(), record)
		return slog.New(jsonHandler)
	}
	return slog.New(slogmulti.Fanout(jsonHandler, journalHandler))
}

// ParseLevel converts a string log level to slog.Level.
// Valid values: "debug", "info", "warn", "error".
// Unrecognized values default to info level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// toJournalKey maps an attribute key to a valid journal field name.
func toJournalKey(key string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(key))
}

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	parts := strings.Split(strings.TrimSpace(string(content)), ":")
	if len(parts) < 3 {
		return false
	}
	return strings.HasSuffix(path.Dir(parts[2]), ".service")
}
