package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/tally/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))

	if shortLines >= tallLines {
		t.Fatal("Test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	if len(lines) != tallLines {
		t.Errorf("Joined height should match tallest card: got %d, want %d", len(lines), tallLines)
	}

	for i, line := range lines {
		if i >= shortLines && !strings.Contains(line, "\x1b[") {
			t.Errorf("Line %d has NO ANSI codes - will show as black squares", i)
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "A", 30)
	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("Line %d width = %d, want %d", i, w, want)
		}
	}

	tallLines := len(strings.Split(tallCard, "\n"))
	if len(lines) != tallLines {
		t.Errorf("Joined should have %d lines (tallest), got %d", tallLines, len(lines))
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	widths := LayoutRow(100, 3)
	if len(widths) != 3 {
		t.Fatalf("len(LayoutRow) = %d, want 3", len(widths))
	}
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum != 100 {
		t.Fatalf("sum = %d, want 100", sum)
	}
	if widths[0] != 34 || widths[2] != 33 {
		t.Fatalf("widths = %v, want [34 33 33]", widths)
	}
}

func TestMetricCardAlert(t *testing.T) {
	theme.SetActive("flexoki-dark")

	card := MetricCard(Metric{Label: "Remaining", Value: "Over Budget!", Alert: true}, 30)
	if !strings.Contains(card, "Over Budget!") {
		t.Fatalf("alert card missing value:\n%s", card)
	}
	// #D14D41 is flexoki red: 209;77;65
	if !strings.Contains(card, "209;77;65") {
		t.Fatalf("alert card not rendered in red:\n%q", card)
	}
}
