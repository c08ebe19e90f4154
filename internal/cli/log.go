package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w that drops messages below level.
// Timestamps read "HH:MM:SS.cc", e.g. "09:12:44.07", which is enough to see
// how long loading and exporting a document took.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one command run and reports it at info level once the
// command has finished. A progress belongs to a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts measuring now. Call done when the work is complete.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the time elapsed since newProgress, rounded to the
// millisecond, e.g. "Exported 4 statements (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey keys values this package stores in a context.
type ctxKey int

// loggerKey holds the command logger set up by the root command.
const loggerKey ctxKey = 0

// withLogger returns a copy of ctx carrying l. Subcommands read it back with
// loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger of ctx, or log.Default() when none is
// attached, as happens when a subcommand runs without the root command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}

	return log.Default()
}
