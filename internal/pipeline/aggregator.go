// Package pipeline loads expense files and aggregates records into the
// summaries the renderers show.
package pipeline

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/goal"
	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/model"
)

// Summarize combines ledger totals with the record and goal lists.
// Ledger figures always come from the snapshot, never from the records.
func Summarize(snap ledger.Snapshot, records []expense.Record, goals []goal.Goal, strategy expense.Strategy) model.BudgetStats {
	stats := model.BudgetStats{
		Budget:        snap.Budget,
		TotalExpenses: snap.TotalExpenses,
		Remaining:     snap.Remaining,
		OverBudget:    snap.OverBudget(),
		ExpenseCount:  len(records),
		Kinds:         AggregateKinds(records),
		GoalCount:     len(goals),
		GoalsTotal:    decimal.Zero,
	}

	if snap.Budget.IsPositive() {
		stats.UsedPercent = snap.TotalExpenses.Div(snap.Budget).InexactFloat64()
	}

	if strategy == nil {
		strategy = expense.Simple{}
	}
	stats.StrategyName = strategy.Name()
	stats.StrategyTotal = strategy.Total(records)

	for _, g := range goals {
		stats.GoalsTotal = stats.GoalsTotal.Add(g.Amount)
	}

	return stats
}

// AggregateKinds returns one entry per kind, in expense.Kinds order.
func AggregateKinds(records []expense.Record) []model.KindStats {
	counts := make(map[expense.Kind]int)
	for _, r := range records {
		counts[r.Kind]++
	}
	totals := expense.SumByKind(records)
	grand := expense.Sum(records)

	out := make([]model.KindStats, 0, len(expense.Kinds))
	for _, k := range expense.Kinds {
		ks := model.KindStats{
			Kind:  string(k),
			Count: counts[k],
			Total: totals[k],
		}
		if grand.IsPositive() {
			ks.SharePercent = totals[k].Div(grand).InexactFloat64()
		}
		out = append(out, ks)
	}
	return out
}

// FilterByKind returns records of the given kind. An empty kind keeps all.
func FilterByKind(records []expense.Record, kind expense.Kind) []expense.Record {
	if kind == "" {
		return records
	}
	var result []expense.Record
	for _, r := range records {
		if r.Kind == kind {
			result = append(result, r)
		}
	}
	return result
}

// FilterByName returns records whose name contains the substring.
func FilterByName(records []expense.Record, name string) []expense.Record {
	if name == "" {
		return records
	}
	var result []expense.Record
	for _, r := range records {
		if containsIgnoreCase(r.Name, name) {
			result = append(result, r)
		}
	}
	return result
}

// TopExpenses returns up to n records sorted by amount, largest first.
func TopExpenses(records []expense.Record, n int) []expense.Record {
	sorted := make([]expense.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
