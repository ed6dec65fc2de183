package expense

import "github.com/shopspring/decimal"

// LegacyRecord is the expense shape exported by the old web tracker.
type LegacyRecord struct {
	ExpenseName string          `json:"expenseName" yaml:"expenseName"`
	AmountSpent decimal.Decimal `json:"amountSpent" yaml:"amountSpent"`
}

// FromLegacy converts a legacy row into a Record of the given kind.
func FromLegacy(l LegacyRecord, kind Kind) (Record, error) {
	return New(l.ExpenseName, l.AmountSpent, kind)
}
