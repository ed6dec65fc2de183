package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar. notice is shown in the
// middle (for example the last event); overBudget flags the right side red.
func RenderStatusBar(width int, notice string, events int, overBudget bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	alertStyle := lipgloss.NewStyle().
		Foreground(t.Red).
		Background(t.Surface).
		Bold(true)

	left := style.Render(" [?]help  [b]udget  [n]ew expense  [t]arget  [q]uit")
	right := style.Render(fmt.Sprintf("%d events ", events))
	if overBudget {
		right = alertStyle.Render("OVER BUDGET ") + right
	}
	mid := ""
	if notice != "" {
		mid = style.Render("  " + notice)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
		mid = ""
		padding = width - lipgloss.Width(left) - lipgloss.Width(right)
		if padding < 0 {
			padding = 0
		}
	}

	bar := left + mid + style.Render(fmt.Sprintf("%*s", padding, "")) + right
	return lipgloss.NewStyle().Width(width).Background(t.Surface).Render(bar)
}
