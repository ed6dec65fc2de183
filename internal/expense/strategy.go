package expense

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Strategy computes a total over a set of records.
type Strategy interface {
	Name() string
	Total(records []Record) decimal.Decimal
}

// Simple is the plain sum of amounts.
type Simple struct{}

// Name implements Strategy.
func (Simple) Name() string { return "simple" }

// Total implements Strategy.
func (Simple) Total(records []Record) decimal.Decimal {
	return Sum(records)
}

// DefaultMarkup is the markup a fresh config starts with.
var DefaultMarkup = decimal.NewFromFloat(0.10)

// Advanced pads the plain sum by Markup (0.10 adds 10%). A zero Markup adds
// nothing.
type Advanced struct {
	Markup decimal.Decimal
}

// Name implements Strategy.
func (Advanced) Name() string { return "advanced" }

// Total implements Strategy.
func (a Advanced) Total(records []Record) decimal.Decimal {
	return Sum(records).Mul(decimal.NewFromInt(1).Add(a.Markup)).Round(2)
}

// StrategyNames lists the accepted strategy names.
var StrategyNames = []string{"simple", "advanced"}

// StrategyByName resolves a strategy. markup only applies to "advanced".
func StrategyByName(name string, markup decimal.Decimal) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "simple":
		return Simple{}, nil
	case "advanced":
		return Advanced{Markup: markup}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %s)", name, strings.Join(StrategyNames, ", "))
	}
}
