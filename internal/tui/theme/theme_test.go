package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("nope").Name; got != "flexoki-dark" {
		t.Fatalf("ByName(nope) = %q, want flexoki-dark", got)
	}
	if got := ByName("terminal").Name; got != "terminal" {
		t.Fatalf("ByName(terminal) = %q, want terminal", got)
	}
}

func TestValidAndNames(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("len(Names()) = %d, want %d", len(names), len(All))
	}
	for _, n := range names {
		if !Valid(n) {
			t.Fatalf("Valid(%q) = false", n)
		}
	}
	if Valid("tokyo-night") {
		t.Fatal("Valid(tokyo-night) = true, want false")
	}
}

func TestForUsage(t *testing.T) {
	th := FlexokiDark
	tests := []struct {
		pct  float64
		want string
	}{
		{0.1, string(th.Green)},
		{0.6, string(th.Yellow)},
		{0.9, string(th.Orange)},
		{1.0, string(th.Orange)},
		{1.2, string(th.Red)},
	}
	for _, tt := range tests {
		if got := string(th.ForUsage(tt.pct)); got != tt.want {
			t.Fatalf("ForUsage(%v) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}
