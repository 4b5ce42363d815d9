package decompress

import (
	"io"
	"log/slog"
)

// logger is an interface that defines the logging functions
// that are used during extraction
type logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// slog to discard
var defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
