// Package cli implements the stackgantt command-line interface.
//
// Commands load a task set from a JSON, YAML or TOML file (or MongoDB),
// lay it out on a calendar timeline and render it, serve it over HTTP, or
// open it in an interactive terminal preview. The CLI is built using cobra
// and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, JSON, PDF or PNG charts, or dependency graphs
//   - layout: Write the calendar header geometry as JSON
//   - serve: Host a task set over HTTP with edit and delete endpoints
//   - preview: Browse and edit tasks in the terminal
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/stackgantt/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes timestamped lines ("14:32:01.45") at level and above.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a command step took, e.g.
// "Rendered 2 artifact(s) (84ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, p.elapsed())
}

// fail logs a failed step at warn level with its elapsed time.
func (p *progress) fail(msg string, err error) {
	p.logger.Warn(msg, "err", err, "after", p.elapsed())
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the subcommands.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
