// Package expense defines expense records, the legacy record adapter and the
// total calculation strategies.
package expense

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyName is returned when a record name is blank.
	ErrEmptyName = errors.New("expense name is empty")
	// ErrNonPositive is returned when an amount is zero or negative.
	ErrNonPositive = errors.New("amount must be positive")
	// ErrOutOfRange is returned for amounts above MaxAmount or with more
	// fractional digits than any currency uses.
	ErrOutOfRange = errors.New("amount is out of range")
)

// MaxAmount is the largest amount accepted anywhere.
var MaxAmount = decimal.New(1, 12)

const (
	maxIntegerDigits  = 13
	maxFractionDigits = 30
)

// RoundAmount rounds d to cents. The magnitude is checked from the exponent
// and digit count first, so input like 1e10000000 is refused without being
// expanded.
func RoundAmount(d decimal.Decimal) (decimal.Decimal, error) {
	exp := int64(d.Exponent())
	if exp < -maxFractionDigits || int64(d.NumDigits())+exp > maxIntegerDigits {
		return decimal.Zero, ErrOutOfRange
	}
	d = d.Round(2)
	if d.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero, ErrOutOfRange
	}
	return d, nil
}

// Kind tags a record as a fixed or variable expense.
type Kind string

const (
	Fixed    Kind = "fixed"
	Variable Kind = "variable"
)

// Kinds lists every kind in display order.
var Kinds = []Kind{Fixed, Variable}

// ParseKind maps user input to a Kind. Blank input means Variable.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "variable", "v":
		return Variable, nil
	case "fixed", "f":
		return Fixed, nil
	default:
		return "", fmt.Errorf("unknown expense kind %q", s)
	}
}

// Record is a single logged expense. Treat it as immutable.
type Record struct {
	ID        uuid.UUID
	Name      string
	Amount    decimal.Decimal
	Kind      Kind
	CreatedAt time.Time
}

// New builds a validated record.
func New(name string, amount decimal.Decimal, kind Kind) (Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, ErrEmptyName
	}
	if !amount.IsPositive() {
		return Record{}, ErrNonPositive
	}
	if kind == "" {
		kind = Variable
	}
	return Record{
		ID:        uuid.New(),
		Name:      name,
		Amount:    amount,
		Kind:      kind,
		CreatedAt: time.Now(),
	}, nil
}

// Display renders the record as "name: $12.34".
func (r Record) Display() string {
	return fmt.Sprintf("%s: $%s", r.Name, r.Amount.StringFixed(2))
}

// Sum adds up the amounts of records.
func Sum(records []Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// SumByKind splits the total by kind. Every kind is present in the result.
func SumByKind(records []Record) map[Kind]decimal.Decimal {
	out := make(map[Kind]decimal.Decimal, len(Kinds))
	for _, k := range Kinds {
		out[k] = decimal.Zero
	}
	for _, r := range records {
		out[r.Kind] = out[r.Kind].Add(r.Amount)
	}
	return out
}
