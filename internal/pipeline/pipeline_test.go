package pipeline

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/goal"
	"github.com/theirongolddev/tally/internal/ledger"
)

func rec(name, amount string, kind expense.Kind) expense.Record {
	return expense.Record{Name: name, Amount: decimal.RequireFromString(amount), Kind: kind}
}

func TestSummarize(t *testing.T) {
	l := ledger.New()
	l.SetBudget(decimal.NewFromInt(200))
	l.AddExpense(decimal.NewFromInt(150))

	records := []expense.Record{
		rec("Rent", "100", expense.Fixed),
		rec("Food", "50", expense.Variable),
	}
	goals := []goal.Goal{
		{Name: "Car", Amount: decimal.NewFromInt(1000)},
		{Name: "Trip", Amount: decimal.NewFromInt(500)},
	}

	stats := Summarize(l.Snapshot(), records, goals, expense.Advanced{Markup: expense.DefaultMarkup})

	assert.Equal(t, "200", stats.Budget.String())
	assert.Equal(t, "150", stats.TotalExpenses.String())
	assert.Equal(t, "50", stats.Remaining.String())
	assert.False(t, stats.OverBudget)
	assert.InDelta(t, 0.75, stats.UsedPercent, 1e-9)
	assert.Equal(t, "advanced", stats.StrategyName)
	assert.Equal(t, "165", stats.StrategyTotal.String())
	assert.Equal(t, 2, stats.ExpenseCount)
	assert.Equal(t, 2, stats.GoalCount)
	assert.Equal(t, "1500", stats.GoalsTotal.String())

	require.Len(t, stats.Kinds, 2)
	assert.Equal(t, "fixed", stats.Kinds[0].Kind)
	assert.Equal(t, 1, stats.Kinds[0].Count)
	assert.InDelta(t, 2.0/3.0, stats.Kinds[0].SharePercent, 1e-9)
}

func TestSummarizeNoBudget(t *testing.T) {
	l := ledger.New()
	l.AddExpense(decimal.NewFromInt(10))

	stats := Summarize(l.Snapshot(), nil, nil, nil)
	assert.True(t, stats.OverBudget)
	assert.Equal(t, 0.0, stats.UsedPercent)
	assert.Equal(t, "simple", stats.StrategyName)
	assert.True(t, stats.StrategyTotal.IsZero())
}

func TestFilters(t *testing.T) {
	records := []expense.Record{
		rec("Rent", "900", expense.Fixed),
		rec("Coffee beans", "12", expense.Variable),
		rec("coffee", "3", expense.Variable),
	}

	assert.Len(t, FilterByKind(records, expense.Variable), 2)
	assert.Len(t, FilterByKind(records, ""), 3)
	assert.Len(t, FilterByName(records, "COFFEE"), 2)
	assert.Len(t, FilterByName(records, ""), 3)

	top := TopExpenses(records, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Rent", top[0].Name)
	assert.Equal(t, "Coffee beans", top[1].Name)
	assert.Equal(t, "Rent", records[0].Name, "input must not be reordered")
}

func TestLoadKeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 6; i++ {
		p := filepath.Join(dir, fmt.Sprintf("f%d.yaml", i))
		body := fmt.Sprintf("- name: item%d\n  amount: %d\n", i, i+1)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		paths = append(paths, p)
	}
	legacy := filepath.Join(dir, "legacy.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`[{"expenseName":"Old","amountSpent":2.5},{"expenseName":"","amountSpent":1}]`), 0o600))
	paths = append(paths, legacy, filepath.Join(dir, "missing.yaml"))

	var calls atomic.Int64
	result := Load(paths, expense.Variable, func(current, total int) {
		calls.Add(1)
		assert.LessOrEqual(t, current, total)
	})

	assert.Equal(t, int64(len(paths)), calls.Load())
	assert.Equal(t, 8, result.TotalFiles)
	assert.Equal(t, 7, result.ParsedFiles)
	assert.Equal(t, 1, result.FileErrors)
	assert.Equal(t, 1, result.RowErrors)
	assert.Equal(t, 1, result.LegacyFiles)

	require.Len(t, result.Records, 7)
	for i := 0; i < 6; i++ {
		assert.Equal(t, fmt.Sprintf("item%d", i), result.Records[i].Name)
	}
	assert.Equal(t, "Old", result.Records[6].Name)

	sum := expense.Sum(result.Records).InexactFloat64()
	assert.True(t, math.Abs(sum-23.5) < 1e-9, "sum = %v", sum)
}

func TestLoadEmpty(t *testing.T) {
	result := Load(nil, expense.Variable, nil)
	assert.Equal(t, 0, result.TotalFiles)
	assert.Empty(t, result.Records)
}
