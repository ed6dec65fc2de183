package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"12.3", "$12.30"},
		{"1234.5", "$1,234.50"},
		{"1000000", "$1,000,000.00"},
		{"0.005", "$0.01"},
		{"-20", "-$20.00"},
	}
	for _, tt := range tests {
		got := FormatCost(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Fatalf("FormatCost(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRemaining(t *testing.T) {
	if got := FormatRemaining(decimal.NewFromInt(70)); got != "$70.00" {
		t.Fatalf("FormatRemaining(70) = %q, want %q", got, "$70.00")
	}
	if got := FormatRemaining(decimal.Zero); got != "$0.00" {
		t.Fatalf("FormatRemaining(0) = %q, want %q", got, "$0.00")
	}
	if got := FormatRemaining(decimal.NewFromInt(-20)); got != OverBudgetLabel {
		t.Fatalf("FormatRemaining(-20) = %q, want %q", got, OverBudgetLabel)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(decimal.NewFromInt(130), decimal.NewFromInt(100)); got != "+$30.00" {
		t.Fatalf("FormatDelta up = %q, want %q", got, "+$30.00")
	}
	if got := FormatDelta(decimal.NewFromInt(80), decimal.NewFromInt(100)); got != "-$20.00" {
		t.Fatalf("FormatDelta down = %q, want %q", got, "-$20.00")
	}
}
