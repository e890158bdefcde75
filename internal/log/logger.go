// Package log provides the application-wide slog logger. Console output goes
// to stderr; an optional file sink rotates with lumberjack.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization.
// Values can be provided directly or via environment variables:
//   - PACKVIEW_LOG_LEVEL=debug|info|warn|error
//   - PACKVIEW_LOG_FORMAT=console|json
//   - PACKVIEW_LOG_FILE=<path> (enables rotated file logging)
//   - PACKVIEW_LOG_SOURCE=true|false
type Options struct {
	Level     string
	Format    string // "console" or "json"
	AddSource bool
	File      string
}

// Environment variable names read by FromEnv.
const (
	EnvLogLevel  = "PACKVIEW_LOG_LEVEL"
	EnvLogFormat = "PACKVIEW_LOG_FORMAT"
	EnvLogFile   = "PACKVIEW_LOG_FILE"
	EnvLogSource = "PACKVIEW_LOG_SOURCE"
)

var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   *slog.Logger
	fileWriter      *lj.Logger
)

// L returns the default application logger, initializing from env if needed.
func L() *slog.Logger {
	defaultLoggerMu.RLock()
	l := defaultLogger
	defaultLoggerMu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	defaultLoggerMu.RLock()
	l = defaultLogger
	defaultLoggerMu.RUnlock()
	return l
}

// Init configures the global logger and sets slog.Default as well.
func Init(opts Options) {
	initWith(opts, os.Stderr)
}

func initWith(opts Options, console io.Writer) {
	lvl := ParseLevel(opts.Level)
	hopts := &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}

	var handlers []slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		handlers = append(handlers, slog.NewJSONHandler(console, hopts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(console, hopts))
	}

	var fw *lj.Logger
	if path := strings.TrimSpace(opts.File); path != "" {
		fw = &lj.Logger{Filename: path, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		handlers = append(handlers, slog.NewJSONHandler(fw, hopts))
	}

	var h slog.Handler
	if len(handlers) == 1 {
		h = handlers[0]
	} else {
		h = multiHandler(handlers...)
	}
	logger := slog.New(h).With(slog.String("app", "packview"))

	defaultLoggerMu.Lock()
	if fileWriter != nil {
		_ = fileWriter.Close()
	}
	fileWriter = fw
	defaultLogger = logger
	defaultLoggerMu.Unlock()
	slog.SetDefault(logger)
}

// Close flushes and closes the rotating file sink, if any.
func Close() error {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	if fileWriter == nil {
		return nil
	}
	err := fileWriter.Close()
	fileWriter = nil
	return err
}

// FromEnv builds Options from environment variables.
func FromEnv() Options {
	return Options{
		Level:     getenv(EnvLogLevel, "info"),
		Format:    getenv(EnvLogFormat, "console"),
		AddSource: strings.EqualFold(getenv(EnvLogSource, "false"), "true"),
		File:      os.Getenv(EnvLogFile),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

// ParseLevel converts a level name to slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// multiHandler fans out log records to multiple handlers.
func multiHandler(handlers ...slog.Handler) slog.Handler { return &multi{hs: handlers} }

type multi struct{ hs []slog.Handler }

func (m *multi) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multi) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *multi) WithAttrs(attrs []slog.Attr) slog.Handler {
	res := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		res[i] = h.WithAttrs(attrs)
	}
	return &multi{hs: res}
}

func (m *multi) WithGroup(name string) slog.Handler {
	res := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		res[i] = h.WithGroup(name)
	}
	return &multi{hs: res}
}
