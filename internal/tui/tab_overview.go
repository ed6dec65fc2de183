package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	p := a.panel
	stats := a.tracker.Summary()
	var b strings.Builder

	// Row 1: headline cards, driven by the last ledger notification
	remainingDelta := ""
	if p.budget.IsPositive() {
		remainingDelta = cli.FormatPercent(p.usage()) + " used"
	}
	metrics := []components.Metric{
		{Label: "Budget", Value: cli.FormatCost(p.budget), Delta: budgetDelta(a)},
		{Label: "Expenses", Value: cli.FormatCost(p.total), Delta: fmt.Sprintf("%d logged", stats.ExpenseCount)},
		{Label: "Remaining", Value: cli.FormatRemaining(p.remaining()), Delta: remainingDelta, Alert: p.overBudget()},
	}
	if stats.StrategyName != "simple" {
		metrics = append(metrics, components.Metric{
			Label: "Projected",
			Value: cli.FormatCost(stats.StrategyTotal),
			Delta: stats.StrategyName + " strategy",
		})
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: budget usage bar
	innerW := components.CardInnerWidth(cw)
	barW := innerW - 16
	if barW < 10 {
		barW = 10
	}
	var usage string
	if p.budget.IsPositive() {
		usage = components.BudgetBar("Spent", p.usage(), 8, barW)
	} else {
		usage = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("No budget set. Press b to set one.")
	}
	b.WriteString(components.ContentCard("Budget Used", usage, cw))
	b.WriteString("\n")

	// Row 3: recent expenses + kind split
	halves := components.LayoutRow(cw, 2)
	recentCard := components.ContentCard("Recent Expenses", a.renderRecent(components.CardInnerWidth(halves[0]), 6), halves[0])
	kindCard := components.ContentCard("By Kind", a.renderKinds(components.CardInnerWidth(halves[1])), halves[1])

	if a.isCompactLayout() {
		b.WriteString(recentCard)
		b.WriteString("\n")
		b.WriteString(kindCard)
	} else {
		b.WriteString(components.CardRow([]string{recentCard, kindCard}))
	}

	return b.String()
}

func budgetDelta(a App) string {
	if len(a.activity) < 2 {
		return ""
	}
	first := a.activity[0].Snapshot.Budget
	if first.Equal(a.panel.budget) {
		return ""
	}
	return cli.FormatDelta(a.panel.budget, first) + " this session"
}

func (a App) renderRecent(innerW, limit int) string {
	t := theme.Active
	records := a.tracker.Expenses()
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	costStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)

	if len(records) == 0 {
		return mutedStyle.Render("Nothing logged yet. Press n to add an expense.")
	}

	start := len(records) - limit
	if start < 0 {
		start = 0
	}

	amountW := 12
	nameW := innerW - amountW - 1
	var b strings.Builder
	for i := len(records) - 1; i >= start; i-- {
		r := records[i]
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(r.Name, nameW))))
		b.WriteString(mutedStyle.Render(" "))
		b.WriteString(costStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatCost(r.Amount))))
		if i > start {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) renderKinds(innerW int) string {
	t := theme.Active
	kinds := pipeline.AggregateKinds(a.tracker.Expenses())
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	barW := innerW - 30
	if barW < 6 {
		barW = 6
	}

	var b strings.Builder
	for i, ks := range kinds {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-9s %3d  %12s ", ks.Kind, ks.Count, cli.FormatCost(ks.Total))))
		b.WriteString(components.ProgressBar(ks.SharePercent, barW))
		if i < len(kinds)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
