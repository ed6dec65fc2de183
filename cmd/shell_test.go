package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/tracker"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	prev := log.Logger
	log.Logger = zerolog.New(io.Discard)
	t.Cleanup(func() { log.Logger = prev })

	s, err := openSession(context.Background(), config.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func runShellScript(t *testing.T, s *session, script string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, newShell(s, strings.NewReader(script), &out).run())
	return out.String()
}

func TestShellBudgetAndExpenses(t *testing.T) {
	s := newTestSession(t)
	out := runShellScript(t, s, "budget 100\nexpense Coffee 30\nexpense Rent 90 fixed\nsummary\nbudget abc\nquit\n")

	assert.Contains(t, out, "Expenses $0.00 · Budget $100.00 · Remaining $100.00")
	assert.Contains(t, out, "Expenses $30.00 · Budget $100.00 · Remaining $70.00")
	assert.Contains(t, out, "Remaining Over Budget!")
	assert.Contains(t, out, tracker.MsgInvalidBudget)

	assert.True(t, s.ledger.TotalExpenses().Equal(decimal.NewFromInt(120)))
	assert.True(t, s.ledger.Budget().Equal(decimal.NewFromInt(100)))

	records := s.tracker.Expenses()
	require.Len(t, records, 2)
	assert.Equal(t, expense.Variable, records[0].Kind)
	assert.Equal(t, expense.Fixed, records[1].Kind)
}

func TestShellRejectedInputLeavesLedgerAlone(t *testing.T) {
	s := newTestSession(t)
	out := runShellScript(t, s, "budget 50\nexpense Lunch -5\nexpense 12\ngoal Trip zero\n")

	assert.Contains(t, out, tracker.MsgInvalidExpense)
	assert.Contains(t, out, tracker.MsgInvalidGoal)
	assert.True(t, s.ledger.TotalExpenses().IsZero())
	assert.Empty(t, s.tracker.Goals())
}

func TestShellMultiWordNames(t *testing.T) {
	s := newTestSession(t)
	runShellScript(t, s, "expense Movie night tickets 24.50\ngoal New laptop 1200\n")

	records := s.tracker.Expenses()
	require.Len(t, records, 1)
	assert.Equal(t, "Movie night tickets", records[0].Name)
	assert.Equal(t, "New laptop", s.tracker.Goals()[0].Name)
}

func TestShellImportAndKinds(t *testing.T) {
	s := newTestSession(t)
	path := filepath.Join(t.TempDir(), "march.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
expenses:
  - name: Rent
    amount: 900
    kind: fixed
  - name: Groceries
    amount: 120.25
`), 0o600))

	out := runShellScript(t, s, "import "+path+"\nkinds\nevents 2\n")

	assert.Contains(t, out, "Imported 2 expenses from 1 files")
	assert.Contains(t, out, "fixed")
	assert.Contains(t, out, "expense_added")
	assert.True(t, s.ledger.TotalExpenses().Equal(decimal.RequireFromString("1020.25")))

	n, err := s.journal.ExpenseCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestShellStrategySwitch(t *testing.T) {
	s := newTestSession(t)
	out := runShellScript(t, s, "expense Tools 100\nstrategy advanced\nstrategy\nstrategy bogus\n")

	assert.Contains(t, out, "Strategy: advanced (total $110.00)")
	assert.Equal(t, "advanced", s.tracker.Strategy().Name())
	assert.Contains(t, out, "bogus")
	// The ledger total is unaffected by the display strategy.
	assert.True(t, s.ledger.TotalExpenses().Equal(decimal.NewFromInt(100)))
}

func TestShellUnknownCommand(t *testing.T) {
	s := newTestSession(t)
	out := runShellScript(t, s, "frobnicate\n")
	assert.Contains(t, out, `Unknown command "frobnicate"`)
}

func TestSplitExpenseArgs(t *testing.T) {
	name, amount, kind := splitExpenseArgs([]string{"Gym", "40", "fixed"})
	assert.Equal(t, "Gym", name)
	assert.Equal(t, "40", amount)
	assert.Equal(t, expense.Fixed, kind)

	// Two tokens never treat the last as a kind.
	name, amount, kind = splitExpenseArgs([]string{"Gym", "40"})
	assert.Equal(t, "Gym", name)
	assert.Equal(t, "40", amount)
	assert.Equal(t, expense.Variable, kind)

	name, amount, _ = splitExpenseArgs([]string{"Bus", "fare", "2.75"})
	assert.Equal(t, "Bus fare", name)
	assert.Equal(t, "2.75", amount)
}
