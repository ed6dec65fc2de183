// Package tracker is the input-handling layer in front of the ledger. It
// validates raw user input, keeps the expense and goal lists, and only calls
// into the ledger once input is known to be good.
package tracker

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/goal"
	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
)

// RecordSink receives every expense record accepted by the tracker.
type RecordSink interface {
	RecordExpense(r expense.Record) error
}

// Tracker wires user actions to a ledger. Like the ledger it is meant for a
// single goroutine.
type Tracker struct {
	ledger   *ledger.Ledger
	strategy expense.Strategy
	expenses []expense.Record
	goals    goal.Book
	sinks    []RecordSink
}

// New returns a tracker over l. A nil strategy means expense.Simple.
func New(l *ledger.Ledger, strategy expense.Strategy) *Tracker {
	if strategy == nil {
		strategy = expense.Simple{}
	}
	return &Tracker{ledger: l, strategy: strategy}
}

// Ledger returns the underlying ledger.
func (t *Tracker) Ledger() *ledger.Ledger {
	return t.ledger
}

// AddSink registers a sink for accepted expense records.
func (t *Tracker) AddSink(s RecordSink) {
	t.sinks = append(t.sinks, s)
}

// Strategy returns the active calculation strategy.
func (t *Tracker) Strategy() expense.Strategy {
	return t.strategy
}

// SetStrategy swaps the calculation strategy. Ledger totals are unaffected.
func (t *Tracker) SetStrategy(s expense.Strategy) {
	if s == nil {
		s = expense.Simple{}
	}
	t.strategy = s
}

// SetBudget parses raw and replaces the ledger budget.
func (t *Tracker) SetBudget(raw string) (decimal.Decimal, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		log.Debug().Str("input", raw).Err(err).Msg("Rejected budget input")
		return decimal.Zero, invalid(MsgInvalidBudget, err)
	}
	t.ledger.SetBudget(amount)
	return amount, nil
}

// AddExpense validates name and raw amount, stores the record and adds it to
// the ledger.
func (t *Tracker) AddExpense(name, raw string, kind expense.Kind) (expense.Record, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		log.Debug().Str("name", name).Str("input", raw).Err(err).Msg("Rejected expense input")
		return expense.Record{}, invalid(MsgInvalidExpense, err)
	}
	rec, err := expense.New(name, amount, kind)
	if err != nil {
		log.Debug().Str("name", name).Err(err).Msg("Rejected expense input")
		return expense.Record{}, invalid(MsgInvalidExpense, err)
	}
	t.accept(rec)
	return rec, nil
}

// Import adds already-validated records in order, for example the output of
// pipeline.Load.
func (t *Tracker) Import(records []expense.Record) int {
	for _, rec := range records {
		t.accept(rec)
	}
	return len(records)
}

// ImportLegacy adapts legacy rows and adds the valid ones. Rejected rows are
// reported together in the returned error.
func (t *Tracker) ImportLegacy(rows []expense.LegacyRecord, kind expense.Kind) (int, error) {
	var (
		added int
		errs  []error
	)
	for i, row := range rows {
		row.AmountSpent = row.AmountSpent.Round(2)
		rec, err := expense.FromLegacy(row, kind)
		if err != nil {
			errs = append(errs, fmt.Errorf("legacy row %d: %w", i+1, err))
			continue
		}
		t.accept(rec)
		added++
	}
	return added, errors.Join(errs...)
}

func (t *Tracker) accept(rec expense.Record) {
	t.expenses = append(t.expenses, rec)
	for _, s := range t.sinks {
		if err := s.RecordExpense(rec); err != nil {
			log.Warn().Err(err).Str("expense", rec.Name).Msg("Expense sink failed")
		}
	}
	t.ledger.AddExpense(rec.Amount)
}

// SetGoal validates and appends a savings goal.
func (t *Tracker) SetGoal(name, raw string) (goal.Goal, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return goal.Goal{}, invalid(MsgInvalidGoal, err)
	}
	g, err := t.goals.Add(name, amount)
	if err != nil {
		return goal.Goal{}, invalid(MsgInvalidGoal, err)
	}
	return g, nil
}

// Expenses returns a copy of the accepted records in insertion order.
func (t *Tracker) Expenses() []expense.Record {
	out := make([]expense.Record, len(t.expenses))
	copy(out, t.expenses)
	return out
}

// Goals returns the goals in insertion order.
func (t *Tracker) Goals() []goal.Goal {
	return t.goals.List()
}

// Summary aggregates the current position.
func (t *Tracker) Summary() model.BudgetStats {
	return pipeline.Summarize(t.ledger.Snapshot(), t.expenses, t.goals.List(), t.strategy)
}

// UserMessage returns the message to show for err, or err's text when it is
// not a validation failure.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
