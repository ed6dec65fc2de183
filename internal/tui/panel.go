package tui

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/ledger"
)

// panel is the dashboard's ledger observer. It keeps the totals from the
// last notification so the view never reads the ledger mid-mutation.
type panel struct {
	total   decimal.Decimal
	budget  decimal.Decimal
	updates int
	changed time.Time
}

func newPanel(snap ledger.Snapshot) *panel {
	return &panel{total: snap.TotalExpenses, budget: snap.Budget}
}

// Update implements ledger.Observer.
func (p *panel) Update(totalExpenses, budget decimal.Decimal) {
	p.total = totalExpenses
	p.budget = budget
	p.updates++
	p.changed = time.Now()
}

func (p *panel) remaining() decimal.Decimal {
	return p.budget.Sub(p.total)
}

func (p *panel) overBudget() bool {
	return p.remaining().IsNegative()
}

// usage is spent / budget, or 0 without a budget.
func (p *panel) usage() float64 {
	if !p.budget.IsPositive() {
		return 0
	}
	return p.total.Div(p.budget).InexactFloat64()
}
