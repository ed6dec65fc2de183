package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

// expensesState tracks the expense list cursor and kind filter.
type expensesState struct {
	cursor int
	offset int
	filter expense.Kind // empty shows every kind
}

func (s *expensesState) moveCursor(d int) {
	s.cursor += d
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *expensesState) clamp(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// nextFilter cycles all -> fixed -> variable -> all.
func (s *expensesState) nextFilter() {
	switch s.filter {
	case "":
		s.filter = expense.Fixed
	case expense.Fixed:
		s.filter = expense.Variable
	default:
		s.filter = ""
	}
	s.cursor = 0
	s.offset = 0
}

func (a App) visibleExpenses() []expense.Record {
	records := a.tracker.Expenses()
	if a.expState.filter != "" {
		records = pipeline.FilterByKind(records, a.expState.filter)
	}
	return records
}

func (a App) updateExpensesKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.visibleExpenses())
	switch key {
	case "j", "down":
		a.expState.moveCursor(1)
		a.expState.clamp(n)
	case "k", "up":
		a.expState.moveCursor(-1)
	case "home":
		a.expState.cursor = 0
	case "end":
		a.expState.cursor = n - 1
		a.expState.clamp(n)
	case "f":
		a.expState.nextFilter()
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderExpensesTab(cw, h int) string {
	t := theme.Active
	records := a.visibleExpenses()

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)

	title := "Expenses"
	if a.expState.filter != "" {
		title = fmt.Sprintf("Expenses (%s only)", kindLabel(a.expState.filter))
	}

	if len(records) == 0 {
		return components.ContentCard(title, mutedStyle.Render("No expenses. Press n to add one, f to change the filter."), cw)
	}

	innerW := components.CardInnerWidth(cw)
	const (
		idxW    = 4
		kindW   = 9
		amountW = 13
		timeW   = 9
	)
	nameW := innerW - idxW - kindW - amountW - timeW - 4
	if nameW < 8 {
		nameW = 8
	}

	// Visible window: card border, title, header and footer take 6 rows.
	rows := h - 6
	if rows < 3 {
		rows = 3
	}
	cursor := a.expState.cursor
	if cursor >= len(records) {
		cursor = len(records) - 1
	}
	offset := a.expState.offset
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+rows {
		offset = cursor - rows + 1
	}
	end := offset + rows
	if end > len(records) {
		end = len(records)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%*s %-*s %-*s %*s %*s",
		idxW, "#", nameW, "Name", kindW, "Kind", amountW, "Amount", timeW, "Added")))
	b.WriteString("\n")

	for i := offset; i < end; i++ {
		r := records[i]
		line := fmt.Sprintf("%*d %-*s %-*s %*s %*s",
			idxW, i+1,
			nameW, truncStr(r.Name, nameW),
			kindW, kindLabel(r.Kind),
			amountW, cli.FormatCost(r.Amount),
			timeW, r.CreatedAt.Local().Format("15:04:05"))
		if i == cursor {
			b.WriteString(selStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d shown · total %s · [j/k] move  [f] filter",
		len(records), cli.FormatCost(expense.Sum(records)))))

	return components.ContentCard(title, b.String(), cw)
}
