package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"portfolio-api/internal/config"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		config.LogLevelDebug:   slog.LevelDebug,
		config.LogLevelInfo:    slog.LevelInfo,
		config.LogLevelWarning: slog.LevelWarn,
		config.LogLevelError:   slog.LevelError,
		"unknown":              slog.LevelInfo,
	}
	for in, want := range cases {
		require.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	stdout = &buf
	t.Cleanup(func() { stdout = os.Stdout })

	l, err := New(config.LoggerSettings{Level: config.LogLevelWarning, Type: config.LogTypeConsole})
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown", "k", "v")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "k=v")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := New(config.LoggerSettings{
		Level:      config.LogLevelInfo,
		Type:       config.LogTypeFile,
		FilePath:   path,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	})
	require.NoError(t, err)
	l.Error("disk message", "order_id", 3)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), `"msg":"disk message"`)
	require.Contains(t, string(content), `"order_id":3`)
	require.Contains(t, string(content), `"level":"ERROR"`)
}

func TestNewErrors(t *testing.T) {
	_, err := New(config.LoggerSettings{Type: config.LogTypeFile})
	require.Error(t, err)
	_, err = New(config.LoggerSettings{Type: "syslog"})
	require.Error(t, err)
}
