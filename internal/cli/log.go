package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with CLI-friendly formatting.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks elapsed time for a long-running operation.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts tracking elapsed time.
func newProgress(logger *log.Logger) *progress {
	return &progress{logger: logger, start: time.Now()}
}

// done logs a completion message with the elapsed time.
func (p *progress) done(msg string) {
	p.logger.Info(fmt.Sprintf("%s (%.3fs)", msg, time.Since(p.start).Seconds()))
}

// ctxKey is the type for context keys in this package.
type ctxKey int

const loggerKey ctxKey = iota

// withLogger returns a context carrying the logger.
func withLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// loggerFromContext extracts the logger from the context, falling back to
// the default logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return logger
	}
	return log.Default()
}
