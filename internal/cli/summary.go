package cli

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/goal"
	"github.com/theirongolddev/tally/internal/model"
)

// SummaryTable lays out the budget position.
func SummaryTable(stats model.BudgetStats) Table {
	used := "-"
	if stats.Budget.IsPositive() {
		used = FormatPercent(stats.UsedPercent)
	}

	rows := [][]string{
		{"Budget", FormatCost(stats.Budget)},
		{"Total Expenses", FormatCost(stats.TotalExpenses)},
		{"Remaining", FormatRemaining(stats.Remaining)},
		{"Used", used},
		{"---"},
		{"Expenses Logged", FormatNumber(int64(stats.ExpenseCount))},
		{fmt.Sprintf("Total (%s)", stats.StrategyName), FormatCost(stats.StrategyTotal)},
	}
	if stats.GoalCount > 0 {
		rows = append(rows,
			[]string{"---"},
			[]string{"Savings Goals", FormatNumber(int64(stats.GoalCount))},
			[]string{"Goals Total", FormatCost(stats.GoalsTotal)},
		)
	}

	return Table{Title: "Summary", Rows: rows}
}

// KindTable lays out the per-kind split.
func KindTable(kinds []model.KindStats) Table {
	t := Table{
		Title:   "By Kind",
		Headers: []string{"Kind", "Count", "Total", "Share"},
	}
	for _, k := range kinds {
		t.Rows = append(t.Rows, []string{
			k.Kind,
			FormatNumber(int64(k.Count)),
			FormatCost(k.Total),
			FormatPercent(k.SharePercent),
		})
	}
	return t
}

// ExpenseTable lists records with a total row.
func ExpenseTable(title string, records []expense.Record) Table {
	t := Table{
		Title:   title,
		Headers: []string{"Name", "Kind", "Amount"},
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{r.Name, string(r.Kind), FormatCost(r.Amount)})
	}
	t.Rows = append(t.Rows, []string{"---"}, []string{"Total", "", FormatCost(expense.Sum(records))})
	return t
}

// GoalTable lists savings goals.
func GoalTable(goals []goal.Goal) Table {
	t := Table{
		Title:   "Savings Goals",
		Headers: []string{"Goal", "Amount"},
	}
	for _, g := range goals {
		t.Rows = append(t.Rows, []string{g.Name, FormatCost(g.Amount)})
	}
	return t
}
