package tracker

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/ledger"
)

type countingObserver struct {
	n int
}

func (c *countingObserver) Update(_, _ decimal.Decimal) { c.n++ }

type memSink struct {
	names []string
	err   error
}

func (m *memSink) RecordExpense(r expense.Record) error {
	m.names = append(m.names, r.Name)
	return m.err
}

func newTracker() (*Tracker, *countingObserver) {
	l := ledger.New()
	obs := &countingObserver{}
	l.Subscribe(obs)
	return New(l, nil), obs
}

func TestParseAmount(t *testing.T) {
	good := map[string]string{
		"100":       "100",
		" 12.345 ":  "12.35",
		"$1,250.10": "1250.1",
		"0.005":     "0.01",
	}
	for in, want := range good {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}

	bad := map[string]error{
		"":      ErrMissingAmount,
		"   ":   ErrMissingAmount,
		"abc":   ErrNotNumeric,
		"12abc": ErrNotNumeric,
		"0":     ErrNonPositive,
		"-5":    ErrNonPositive,
		"0.001": ErrNonPositive,

		"1e10000000":       ErrNotNumeric,
		"1e-10000000":      ErrNotNumeric,
		"0e1000000":        ErrNotNumeric,
		"1000000000000.01": ErrNotNumeric,
	}
	for in, want := range bad {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, want, in)
	}

	_, err := ParseAmount("5e20")
	assert.ErrorIs(t, err, expense.ErrOutOfRange)

	got, err := ParseAmount("1e12")
	require.NoError(t, err)
	assert.True(t, got.Equal(expense.MaxAmount))
}

func TestSetBudget(t *testing.T) {
	tr, obs := newTracker()

	_, err := tr.SetBudget("lots")
	require.Error(t, err)
	assert.Equal(t, MsgInvalidBudget, UserMessage(err))
	assert.ErrorIs(t, err, ErrNotNumeric)
	assert.Equal(t, 0, obs.n, "ledger must not be touched on invalid input")

	amount, err := tr.SetBudget("100")
	require.NoError(t, err)
	assert.Equal(t, "100", amount.String())
	assert.Equal(t, "100", tr.Ledger().Budget().String())
	assert.Equal(t, 1, obs.n)
}

func TestAddExpenseValidation(t *testing.T) {
	tr, obs := newTracker()

	cases := []struct {
		name, amount string
		want         error
	}{
		{"", "10", expense.ErrEmptyName},
		{"  ", "10", expense.ErrEmptyName},
		{"Lunch", "", ErrMissingAmount},
		{"Lunch", "ten", ErrNotNumeric},
		{"Lunch", "-1", ErrNonPositive},
	}
	for _, c := range cases {
		_, err := tr.AddExpense(c.name, c.amount, expense.Variable)
		require.Error(t, err)
		assert.ErrorIs(t, err, c.want)
		assert.Equal(t, MsgInvalidExpense, UserMessage(err))

		var ve *ValidationError
		assert.True(t, errors.As(err, &ve))
	}

	assert.Equal(t, 0, obs.n)
	assert.Empty(t, tr.Expenses())
	assert.True(t, tr.Ledger().TotalExpenses().IsZero())
}

func TestAddExpenseFlow(t *testing.T) {
	tr, obs := newTracker()
	sink := &memSink{}
	tr.AddSink(sink)

	_, err := tr.SetBudget("100")
	require.NoError(t, err)

	rec, err := tr.AddExpense("Groceries", "30", expense.Variable)
	require.NoError(t, err)
	assert.Equal(t, "Groceries: $30.00", rec.Display())

	_, err = tr.AddExpense("Rent", "90", expense.Fixed)
	require.NoError(t, err)

	assert.Equal(t, 3, obs.n)
	assert.Equal(t, []string{"Groceries", "Rent"}, sink.names)

	s := tr.Summary()
	assert.Equal(t, "120", s.TotalExpenses.String())
	assert.Equal(t, "-20", s.Remaining.String())
	assert.True(t, s.OverBudget)
	assert.Equal(t, 2, s.ExpenseCount)
}

func TestSinkErrorDoesNotBlockLedger(t *testing.T) {
	tr, obs := newTracker()
	tr.AddSink(&memSink{err: errors.New("disk full")})

	_, err := tr.AddExpense("Snack", "2", "")
	require.NoError(t, err)
	assert.Equal(t, 1, obs.n)
	assert.Equal(t, "2", tr.Ledger().TotalExpenses().String())
}

func TestImportLegacy(t *testing.T) {
	tr, obs := newTracker()

	rows := []expense.LegacyRecord{
		{ExpenseName: "Gym", AmountSpent: decimal.RequireFromString("29.999")},
		{ExpenseName: "", AmountSpent: decimal.NewFromInt(5)},
		{ExpenseName: "Phone", AmountSpent: decimal.NewFromInt(40)},
		{ExpenseName: "Refund", AmountSpent: decimal.NewFromInt(-3)},
	}
	added, err := tr.ImportLegacy(rows, expense.Fixed)
	assert.Equal(t, 2, added)
	require.Error(t, err)
	assert.ErrorIs(t, err, expense.ErrEmptyName)
	assert.ErrorIs(t, err, expense.ErrNonPositive)

	assert.Equal(t, 2, obs.n)
	assert.Equal(t, "70", tr.Ledger().TotalExpenses().String())
	for _, r := range tr.Expenses() {
		assert.Equal(t, expense.Fixed, r.Kind)
	}
}

func TestImportRecords(t *testing.T) {
	tr, obs := newTracker()
	a, _ := expense.New("A", decimal.NewFromInt(1), expense.Fixed)
	b, _ := expense.New("B", decimal.NewFromInt(2), expense.Variable)

	assert.Equal(t, 2, tr.Import([]expense.Record{a, b}))
	assert.Equal(t, 2, obs.n)
	assert.Equal(t, "3", tr.Ledger().TotalExpenses().String())
}

func TestGoals(t *testing.T) {
	tr, obs := newTracker()

	_, err := tr.SetGoal("", "100")
	assert.Equal(t, MsgInvalidGoal, UserMessage(err))
	_, err = tr.SetGoal("House", "nope")
	assert.Equal(t, MsgInvalidGoal, UserMessage(err))

	g, err := tr.SetGoal("House", "25000")
	require.NoError(t, err)
	assert.Equal(t, "House", g.Name)
	assert.Len(t, tr.Goals(), 1)
	assert.Equal(t, 0, obs.n, "goals never touch the ledger")
}

func TestStrategySwap(t *testing.T) {
	tr, _ := newTracker()
	_, err := tr.AddExpense("A", "100", "")
	require.NoError(t, err)

	assert.Equal(t, "100", tr.Summary().StrategyTotal.String())
	tr.SetStrategy(expense.Advanced{Markup: expense.DefaultMarkup})
	assert.Equal(t, "110", tr.Summary().StrategyTotal.String())
	assert.Equal(t, "100", tr.Summary().TotalExpenses.String())

	tr.SetStrategy(nil)
	assert.Equal(t, "simple", tr.Strategy().Name())
}

func TestUserMessagePassesThroughOtherErrors(t *testing.T) {
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}
