package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/expense"
)

var (
	// ErrMissingAmount is returned for blank amount input.
	ErrMissingAmount = errors.New("amount is missing")
	// ErrNotNumeric is returned when the input does not parse as a number.
	ErrNotNumeric = errors.New("amount is not a number")
	// ErrNonPositive is returned for zero or negative amounts.
	ErrNonPositive = errors.New("amount must be positive")
)

// User-facing messages shown when input is refused.
const (
	MsgInvalidExpense = "Please enter a valid expense name and a positive amount."
	MsgInvalidBudget  = "Please enter a valid budget amount."
	MsgInvalidGoal    = "Please enter valid goal name and amount."
)

// ValidationError wraps an input failure with the message to show the user.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message + " (" + e.Err.Error() + ")"
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(msg string, err error) error {
	return &ValidationError{Message: msg, Err: err}
}

// ParseAmount turns raw user text into a positive amount rounded to cents.
// A leading "$" and thousands separators are accepted.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, ErrMissingAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNotNumeric
	}
	d, err = expense.RoundAmount(d)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", ErrNotNumeric, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositive
	}
	return d, nil
}
