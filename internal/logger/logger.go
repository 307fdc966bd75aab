package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

// Options controls how Init builds the logger.
type Options struct {
	Development bool
	Level       string // optional override: debug, info, warn, error
	SentryDSN   string
	AppName     string
	AppEnv      string
	Output      io.Writer // defaults to os.Stdout
}

// Init initializes the global logger based on environment
// Development: Text format with Debug level
// Production: JSON format with Info level
// Optionally sends errors to Sentry for error tracking
func Init(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	level := slog.LevelInfo
	if opts.Development {
		level = slog.LevelDebug
	}
	if override, ok := ParseLevel(opts.Level); ok {
		level = override
	}

	var handlers []slog.Handler

	// Base handler for stdout (always enabled)
	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.Development {
		handlers = append(handlers, slog.NewTextHandler(out, handlerOpts))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(out, handlerOpts))
	}

	// Optional Sentry handler (sends errors only)
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              opts.SentryDSN,
			Environment:      opts.AppEnv,
			TracesSampleRate: 1.0,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		}
	}

	// Use multi-handler if we have multiple, otherwise use single
	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	Log = slog.New(handler)
	if opts.AppName != "" {
		Log = Log.With("app", opts.AppName)
	}
	slog.SetDefault(Log)
	return Log
}

// ParseLevel maps a level name to a slog.Level. The second result is false
// for empty or unknown names.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
