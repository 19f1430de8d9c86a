package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	log  *slog.Logger
	once sync.Once
)

// Init configures the global logger. Level is one of debug|info|warn|error.
// Called once from server bootstrap; subsequent calls are no-ops.
func Init(level string, jsonOutput bool) {
	once.Do(func() {
		var lvl slog.Level
		switch strings.ToLower(level) {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		default:
			lvl = slog.LevelInfo
		}

		opts := &slog.HandlerOptions{Level: lvl}
		var handler slog.Handler
		if jsonOutput {
			handler = slog.NewJSONHandler(os.Stdout, opts)
		} else {
			handler = slog.NewTextHandler(os.Stdout, opts)
		}
		log = slog.New(handler)
	})
}

func get() *slog.Logger {
	if log == nil {
		Init("info", false)
	}
	return log
}

func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

// Error logs a message with optional key/value args. For convenience the first
// arg may be a bare error, matching call sites like logger.Error("Repo:Op", err).
func Error(msg string, args ...any) {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			get().Error(msg, "error", err)
			return
		}
	}
	get().Error(msg, args...)
}
