package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/feed"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

func describeEvent(ev feed.Event) string {
	s := ev.Snapshot
	switch ev.Type {
	case feed.TypeExpenseAdded:
		return fmt.Sprintf("Expense +%s, total %s, remaining %s",
			cli.FormatCost(ev.Delta.TotalExpenses),
			cli.FormatCost(s.TotalExpenses), cli.FormatRemaining(s.Remaining))
	case feed.TypeBudgetSet:
		return fmt.Sprintf("Budget set to %s, remaining %s",
			cli.FormatCost(s.Budget), cli.FormatRemaining(s.Remaining))
	case feed.TypeSnapshot:
		return fmt.Sprintf("Session at %s of %s", cli.FormatCost(s.TotalExpenses), cli.FormatCost(s.Budget))
	default:
		return fmt.Sprintf("No change, remaining %s", cli.FormatRemaining(s.Remaining))
	}
}

func (a App) renderActivityTab(cw, h int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	timeStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	alertStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	if len(a.activity) == 0 {
		return components.ContentCard("Activity", mutedStyle.Render("Waiting for the first update."), cw)
	}

	var b strings.Builder

	// Running total after each event
	values := make([]float64, 0, len(a.activity))
	for _, ev := range a.activity {
		values = append(values, ev.Snapshot.TotalExpenses.InexactFloat64())
	}
	chartH := 8
	if a.isCompactLayout() {
		chartH = 6
	}
	b.WriteString(components.ContentCard("Total Expenses Over Time",
		components.SpendChart(values, a.panel.budget.InexactFloat64(), components.CardInnerWidth(cw), chartH), cw))
	b.WriteString("\n")

	rows := h - lipgloss.Height(b.String()) - 3
	if rows < 3 {
		rows = 3
	}
	start := len(a.activity) - rows
	if start < 0 {
		start = 0
	}

	var log strings.Builder
	for i := len(a.activity) - 1; i >= start; i-- {
		ev := a.activity[i]
		style := textStyle
		if ev.Snapshot.OverBudget {
			style = alertStyle
		}
		log.WriteString(timeStyle.Render(ev.Timestamp.Local().Format("15:04:05") + "  "))
		log.WriteString(style.Render(describeEvent(ev)))
		if i > start {
			log.WriteString("\n")
		}
	}

	title := "Event Log"
	if a.feed != nil {
		st := a.feed.Status()
		title = fmt.Sprintf("Event Log (%d total", st.TotalEvents)
		if st.Dropped > 0 {
			title += fmt.Sprintf(", %d dropped", st.Dropped)
		}
		title += ")"
	}
	b.WriteString(components.ContentCard(title, log.String(), cw))
	return b.String()
}
