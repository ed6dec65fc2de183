// Package goal keeps the list of savings goals. Goals are independent of the
// budget ledger.
package goal

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyName is returned for a goal without a name.
	ErrEmptyName = errors.New("goal name is empty")
	// ErrNonPositive is returned for a zero or negative target.
	ErrNonPositive = errors.New("goal amount must be positive")
)

// Goal is a named savings target.
type Goal struct {
	Name   string
	Amount decimal.Decimal
}

// Book is an ordered list of goals.
type Book struct {
	goals []Goal
}

// Add validates and appends a goal.
func (b *Book) Add(name string, amount decimal.Decimal) (Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Goal{}, ErrEmptyName
	}
	if !amount.IsPositive() {
		return Goal{}, ErrNonPositive
	}
	g := Goal{Name: name, Amount: amount}
	b.goals = append(b.goals, g)
	return g, nil
}

// List returns a copy of the goals in insertion order.
func (b *Book) List() []Goal {
	out := make([]Goal, len(b.goals))
	copy(out, b.goals)
	return out
}

// Len returns the number of goals.
func (b *Book) Len() int {
	return len(b.goals)
}

// Total sums every goal target.
func (b *Book) Total() decimal.Decimal {
	total := decimal.Zero
	for _, g := range b.goals {
		total = total.Add(g.Amount)
	}
	return total
}
