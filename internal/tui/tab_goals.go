package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

// renderGoalsTab lists savings goals and how much of each the remaining
// budget would cover.
func (a App) renderGoalsTab(cw int) string {
	t := theme.Active
	goals := a.tracker.Goals()
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	if len(goals) == 0 {
		return components.ContentCard("Savings Goals", mutedStyle.Render("No goals yet. Press t to add one."), cw)
	}

	remaining := a.panel.remaining()
	innerW := components.CardInnerWidth(cw)
	nameW := 20
	barW := innerW - nameW - 14 - 6
	if barW < 10 {
		barW = 10
	}

	var b strings.Builder
	for _, g := range goals {
		covered := 0.0
		if remaining.IsPositive() {
			covered = remaining.Div(g.Amount).InexactFloat64()
			if covered > 1 {
				covered = 1
			}
		}
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(g.Name, nameW))))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%13s ", cli.FormatCost(g.Amount))))
		b.WriteString(components.ProgressBar(covered, barW))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d goals · %s total · remaining budget %s",
		len(goals), cli.FormatCost(a.tracker.Summary().GoalsTotal), cli.FormatRemaining(remaining))))

	return components.ContentCard("Savings Goals", b.String(), cw)
}
