// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/config"
)

// Options selects where and how much to log.
type Options struct {
	Level   string
	File    string // empty means Console
	Console io.Writer
	Pretty  bool
}

// Setup installs the global logger. The returned closer releases the log
// file, if one was opened.
func Setup(opts Options) (func() error, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	closer := func() error { return nil }

	var out io.Writer
	switch {
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return closer, fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600) //nolint:gosec // user-configured log path
		if err != nil {
			return closer, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closer = f.Close
	case opts.Console != nil:
		out = opts.Console
	default:
		out = os.Stderr
	}

	if opts.Pretty && opts.File == "" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("app", "tally").Logger()
	return closer, nil
}

// DefaultFile is where the dashboard logs, since it owns the terminal.
func DefaultFile() string {
	return filepath.Join(config.Dir(), "tally.log")
}

// LogObserver writes a line for every ledger notification. The line is a
// warning only on the update that first crosses into over budget, so a bulk
// import against a small budget does not flood the console.
type LogObserver struct {
	Logger zerolog.Logger

	over bool
}

// NewLogObserver returns an observer that logs through the global logger.
func NewLogObserver() *LogObserver {
	return &LogObserver{Logger: log.Logger}
}

// Update implements ledger.Observer.
func (o *LogObserver) Update(totalExpenses, budget decimal.Decimal) {
	remaining := budget.Sub(totalExpenses)
	over := remaining.IsNegative()
	ev := o.Logger.Info()
	switch {
	case over && !o.over:
		ev = o.Logger.Warn().Bool("over_budget", true)
	case over:
		ev = ev.Bool("over_budget", true)
	}
	o.over = over
	ev.Str("total_expenses", totalExpenses.StringFixed(2)).
		Str("budget", budget.StringFixed(2)).
		Str("remaining", remaining.StringFixed(2)).
		Msg("Updated expenses")
}
