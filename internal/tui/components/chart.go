package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}

	return style.Render(buf.String())
}

// SpendChart draws running expense totals as vertical bars against the
// budget ceiling. Cells above the ceiling use the over-budget color and the
// ceiling row is marked with a dashed rule. When there are more totals than
// fit, the oldest are dropped. A budget of zero draws no rule.
func SpendChart(totals []float64, budget float64, width, height int) string {
	if len(totals) == 0 {
		return ""
	}
	t := theme.Active
	if width < 15 || height < 3 {
		return Sparkline(totals, t.Blue)
	}

	top := budget
	for _, v := range totals {
		top = math.Max(top, v)
	}
	if top <= 0 {
		top = 1
	}

	step := chartTickStep(top)
	for math.Ceil(top/step) > float64(max(2, height/2)) {
		step *= 2
	}
	ticks := max(1, int(math.Ceil(top/step)))
	ceiling := float64(ticks) * step
	rowsPerTick := max(2, height/ticks)
	chartH := rowsPerTick * ticks

	labels := make(map[int]string, ticks+1)
	for i := 1; i <= ticks; i++ {
		labels[i*rowsPerTick] = formatChartLabel(step * float64(i))
	}
	budgetRow := 0
	if budget > 0 {
		budgetRow = max(1, min(chartH, int(math.Round(budget/ceiling*float64(chartH)))))
		if _, ok := labels[budgetRow]; !ok {
			labels[budgetRow] = formatChartLabel(budget)
		}
	}
	labelW := 4
	for _, l := range labels {
		labelW = max(labelW, len(l)+1)
	}

	chartW := max(5, width-labelW-1)
	if maxBars := (chartW + 1) / 2; len(totals) > maxBars {
		totals = totals[len(totals)-maxBars:]
	}
	n := len(totals)
	barW := max(1, min(6, (chartW-(n-1))/n))
	axisLen := n*barW + n - 1

	bg := lipgloss.NewStyle().Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	underStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	overStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	ruleStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		barStyle := underStyle
		if budget > 0 && rowBottom >= budget {
			barStyle = overStyle
		}
		empty := bg.Render(strings.Repeat(" ", barW))
		if row == budgetRow {
			empty = ruleStyle.Render(strings.Repeat("┄", barW))
		}

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", labelW, labels[row])))
		for i, v := range totals {
			if i > 0 {
				if row == budgetRow {
					b.WriteString(ruleStyle.Render("┄"))
				} else {
					b.WriteString(bg.Render(" "))
				}
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * float64(len(sparkBlocks)))
				idx = max(0, min(idx, len(sparkBlocks)-1))
				b.WriteString(barStyle.Render(strings.Repeat(string(sparkBlocks[idx]), barW)))
			default:
				b.WriteString(empty)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", labelW, "$0", strings.Repeat("─", axisLen))))
	return b.String()
}

// chartTickStep picks a 1/2/5 multiple of a power of ten giving about five ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))

	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatChartLabel renders a dollar axis label: $5, $250, $1.5k, $2M.
func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("$%.0fM", v/1e6)
		}
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("$%.0fk", v/1e3)
		}
		return fmt.Sprintf("$%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("$%.0f", v)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}
