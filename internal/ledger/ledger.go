// Package ledger holds the budget ceiling and running expense total and
// notifies observers after every change.
package ledger

import "github.com/shopspring/decimal"

// Observer receives the post-mutation totals after every ledger change.
// Arguments are always (totalExpenses, budget).
type Observer interface {
	Update(totalExpenses, budget decimal.Decimal)
}

// ObserverFunc adapts an ordinary function to the Observer interface.
type ObserverFunc func(totalExpenses, budget decimal.Decimal)

// Update calls f(totalExpenses, budget).
func (f ObserverFunc) Update(totalExpenses, budget decimal.Decimal) {
	f(totalExpenses, budget)
}

// Snapshot is a point-in-time copy of the ledger totals.
type Snapshot struct {
	Budget        decimal.Decimal
	TotalExpenses decimal.Decimal
	Remaining     decimal.Decimal
}

// OverBudget reports whether expenses exceed the budget.
func (s Snapshot) OverBudget() bool {
	return s.Remaining.IsNegative()
}

// Ledger is the single owner of the budget ceiling and the cumulative
// expense total. Construct one with New at start-up and pass it to whatever
// needs it.
//
// A Ledger is not safe for concurrent mutation. It assumes a single writer;
// callers sharing it across goroutines must serialise access themselves.
type Ledger struct {
	budget        decimal.Decimal
	totalExpenses decimal.Decimal
	observers     []Observer
}

// New returns an empty ledger with a zero budget.
func New() *Ledger {
	return &Ledger{
		budget:        decimal.Zero,
		totalExpenses: decimal.Zero,
	}
}

// SetBudget replaces the budget ceiling and notifies observers.
// No validation is done here.
func (l *Ledger) SetBudget(amount decimal.Decimal) {
	l.budget = amount
	l.notify()
}

// AddExpense folds amount into the running total and notifies observers.
// Pushing the total past the budget is allowed.
func (l *Ledger) AddExpense(amount decimal.Decimal) {
	l.totalExpenses = l.totalExpenses.Add(amount)
	l.notify()
}

// Budget returns the current ceiling.
func (l *Ledger) Budget() decimal.Decimal {
	return l.budget
}

// TotalExpenses returns the cumulative expense total.
func (l *Ledger) TotalExpenses() decimal.Decimal {
	return l.totalExpenses
}

// Remaining returns budget minus total expenses. Negative means over budget.
func (l *Ledger) Remaining() decimal.Decimal {
	return l.budget.Sub(l.totalExpenses)
}

// OverBudget reports whether Remaining is negative.
func (l *Ledger) OverBudget() bool {
	return l.Remaining().IsNegative()
}

// Snapshot returns the current totals.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		Budget:        l.budget,
		TotalExpenses: l.totalExpenses,
		Remaining:     l.Remaining(),
	}
}

// Subscribe appends o to the notification list. Duplicates are kept and
// notified once per subscription.
func (l *Ledger) Subscribe(o Observer) {
	l.observers = append(l.observers, o)
}

// ObserverCount returns the number of subscriptions.
func (l *Ledger) ObserverCount() int {
	return len(l.observers)
}

func (l *Ledger) notify() {
	total, budget := l.totalExpenses, l.budget
	for _, o := range l.observers {
		o.Update(total, budget)
	}
}
