package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/feed"
	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/logging"
	"github.com/theirongolddev/tally/internal/metrics"
	"github.com/theirongolddev/tally/internal/store"
	"github.com/theirongolddev/tally/internal/tracker"
)

// session is one ledger plus every observer the commands share.
type session struct {
	cfg     config.Config
	ledger  *ledger.Ledger
	tracker *tracker.Tracker
	feed    *feed.Feed
	journal *store.Journal
	metrics *metrics.Registry

	closers []func() error
}

type sessionOptions struct {
	// LogFile sends logs to a file instead of Console. The dashboard uses
	// this because it owns the terminal.
	LogFile string
	Console io.Writer
	// DefaultLevel applies when neither the flag nor the config set one.
	DefaultLevel string
}

// newSession loads config, applies flag overrides, sets up logging and
// builds the session.
func newSession(ctx context.Context, opts sessionOptions) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	applyFlags(&cfg)

	level := cfg.Log.Level
	if flagLogLevel == "" && opts.DefaultLevel != "" {
		level = opts.DefaultLevel
	}
	logFile := opts.LogFile
	if cfg.Log.File != "" {
		logFile = cfg.Log.File
	}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	closeLog, err := logging.Setup(logging.Options{
		Level:   level,
		File:    logFile,
		Console: console,
		Pretty:  true,
	})
	if err != nil {
		return nil, err
	}

	s, err := openSession(ctx, cfg)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	s.closers = append([]func() error{closeLog}, s.closers...)

	if flagBudget != "" {
		if _, err := s.tracker.SetBudget(flagBudget); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("--budget: %s", tracker.UserMessage(err))
		}
	} else if b, ok := cfg.DefaultBudget(); ok {
		s.ledger.SetBudget(b)
	}
	return s, nil
}

func applyFlags(cfg *config.Config) {
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagMetricsAddr != "" {
		cfg.Metrics.Addr = flagMetricsAddr
	}
	if flagStrategy != "" {
		cfg.General.Strategy = flagStrategy
	}
}

// openSession wires the ledger to its observers in a fixed order: log line,
// journal row, feed event, metrics.
func openSession(ctx context.Context, cfg config.Config) (*session, error) {
	strategy, err := expense.StrategyByName(cfg.General.Strategy, cfg.Markup())
	if err != nil {
		return nil, err
	}

	journal, err := store.Open()
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		ledger:  ledger.New(),
		feed:    feed.New(feed.Config{}),
		journal: journal,
		metrics: metrics.NewRegistry(),
	}
	s.closers = append(s.closers, journal.Close)

	s.ledger.Subscribe(logging.NewLogObserver())
	s.ledger.Subscribe(journal.Observer())
	s.ledger.Subscribe(s.feed)
	s.ledger.Subscribe(s.metrics)

	s.tracker = tracker.New(s.ledger, strategy)
	s.tracker.AddSink(journal)

	if cfg.Metrics.Addr != "" {
		mctx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := s.metrics.Serve(mctx, cfg.Metrics.Addr); err != nil {
				log.Error().Err(err).Str("addr", cfg.Metrics.Addr).Msg("Metrics server stopped")
			}
		}()
		s.closers = append(s.closers, func() error {
			cancel()
			<-done
			return nil
		})
	}

	return s, nil
}

// Close releases everything in reverse order of acquisition.
func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
