package source

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/expense"
)

// Shape identifies which row layout a file uses.
type Shape string

const (
	ShapeUnknown Shape = ""
	ShapeModern  Shape = "modern"
	ShapeLegacy  Shape = "legacy"
)

// RawRow is one expense row as it appears on disk. Modern files use
// name/amount/kind; exports from the old web tracker use
// expenseName/amountSpent.
type RawRow struct {
	Name   string           `yaml:"name"`
	Amount *decimal.Decimal `yaml:"amount"`
	Kind   string           `yaml:"kind"`

	ExpenseName string           `yaml:"expenseName"`
	AmountSpent *decimal.Decimal `yaml:"amountSpent"`
}

func (r RawRow) isLegacy() bool {
	return r.ExpenseName != "" || r.AmountSpent != nil
}

// rawFile accepts either a bare list of rows or {expenses: [...]}.
type rawFile struct {
	Expenses []RawRow `yaml:"expenses"`
}

// ParseResult is the outcome of reading one file.
type ParseResult struct {
	Path     string
	Shape    Shape
	Records  []expense.Record
	Rejected []error // one entry per row that failed validation
	Err      error   // set when the file could not be read or decoded
}
