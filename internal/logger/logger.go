// File: internal/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"portfolio-api/internal/config"

	"github.com/natefinch/lumberjack"
)

// stdout 測試可覆寫
var stdout io.Writer = os.Stdout

// New 依設定建立 slog.Logger
// console: 文字格式輸出到 stdout；file: JSON 格式寫入 lumberjack 輪替檔案
func New(s config.LoggerSettings) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: parseLevel(s.Level)}

	switch s.Type {
	case config.LogTypeConsole, "":
		return slog.New(slog.NewTextHandler(stdout, opts)), nil
	case config.LogTypeFile:
		if s.FilePath == "" {
			return nil, fmt.Errorf("file path required for file logger")
		}
		w := &lumberjack.Logger{
			Filename:   s.FilePath,
			MaxSize:    s.MaxSize,
			MaxBackups: s.MaxBackups,
			MaxAge:     s.MaxAge,
			Compress:   true,
		}
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", s.Type)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
