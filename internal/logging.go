package internal

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

var logger *slog.Logger

func init() {
	var level slog.Level
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "ERROR":
		level = slog.LevelError
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "DEBUG":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   slog.TimeKey,
					Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000-07:00")),
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.ToUpper(os.Getenv("LOG_FORMAT")) == "JSON" {
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano)),
				}
			}
			return a
		}
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
}

func Logf(format string, args ...any) {
	logger.Info(fmt.Sprintf(format, args...))
}

func LogWarn(format string, args ...any) {
	logger.Warn(fmt.Sprintf(format, args...))
}

func LogError(format string, args ...any) {
	logger.Error(fmt.Sprintf(format, args...))
}

func LogDebug(format string, args ...any) {
	logger.Debug(fmt.Sprintf(format, args...))
}

// LogInfoWithFields logs a message with a component attribute plus
// arbitrary key/value fields, for request-style structured entries.
func LogInfoWithFields(component, message string, fields map[string]any) {
	args := make([]any, 0, len(fields)*2+2)
	args = append(args, "component", component)
	for k, v := range fields {
		args = append(args, k, v)
	}
	logger.Info(message, args...)
}
