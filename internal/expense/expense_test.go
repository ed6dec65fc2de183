package expense

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewValidates(t *testing.T) {
	_, err := New("   ", dec("5"), Fixed)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = New("Rent", dec("0"), Fixed)
	assert.ErrorIs(t, err, ErrNonPositive)

	_, err = New("Rent", dec("-3"), Fixed)
	assert.ErrorIs(t, err, ErrNonPositive)
}

func TestNewBuildsRecord(t *testing.T) {
	r, err := New("  Coffee ", dec("4.5"), "")
	require.NoError(t, err)
	assert.Equal(t, "Coffee", r.Name)
	assert.Equal(t, Variable, r.Kind)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", r.ID.String())
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, "Coffee: $4.50", r.Display())
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"":         Variable,
		"variable": Variable,
		"V":        Variable,
		"fixed":    Fixed,
		" Fixed ":  Fixed,
		"f":        Fixed,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("monthly")
	assert.Error(t, err)
}

func TestFromLegacy(t *testing.T) {
	r, err := FromLegacy(LegacyRecord{ExpenseName: "Gym", AmountSpent: dec("29.99")}, Fixed)
	require.NoError(t, err)
	assert.Equal(t, "Gym: $29.99", r.Display())
	assert.Equal(t, Fixed, r.Kind)

	_, err = FromLegacy(LegacyRecord{ExpenseName: "", AmountSpent: dec("1")}, Fixed)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestSumByKind(t *testing.T) {
	records := []Record{
		{Name: "Rent", Amount: dec("900"), Kind: Fixed},
		{Name: "Food", Amount: dec("45.25"), Kind: Variable},
		{Name: "Gym", Amount: dec("30"), Kind: Fixed},
	}
	byKind := SumByKind(records)
	assert.Equal(t, "930", byKind[Fixed].String())
	assert.Equal(t, "45.25", byKind[Variable].String())
	assert.Equal(t, "975.25", Sum(records).String())

	empty := SumByKind(nil)
	assert.Len(t, empty, len(Kinds))
	assert.True(t, empty[Fixed].IsZero())
}

func TestStrategies(t *testing.T) {
	records := []Record{
		{Amount: dec("100")},
		{Amount: dec("50")},
	}

	simple, err := StrategyByName("simple", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "150", simple.Total(records).String())

	adv, err := StrategyByName("advanced", DefaultMarkup)
	require.NoError(t, err)
	assert.Equal(t, "advanced", adv.Name())
	assert.Equal(t, "165", adv.Total(records).String())

	// An explicitly configured zero markup adds nothing.
	flat, err := StrategyByName("advanced", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "150", flat.Total(records).String())

	custom, err := StrategyByName("Advanced", dec("0.25"))
	require.NoError(t, err)
	assert.Equal(t, "187.5", custom.Total(records).String())

	_, err = StrategyByName("weighted", decimal.Zero)
	assert.Error(t, err)

	assert.True(t, Simple{}.Total(nil).IsZero())
}

func TestRoundAmount(t *testing.T) {
	got, err := RoundAmount(dec("12.345"))
	require.NoError(t, err)
	assert.Equal(t, "12.35", got.String())

	got, err = RoundAmount(dec("1e12"))
	require.NoError(t, err)
	assert.True(t, got.Equal(MaxAmount))

	for _, in := range []string{"1e10000000", "-1e10000000", "1e-10000000", "1000000000000.01", "2e15"} {
		_, err := RoundAmount(dec(in))
		assert.ErrorIs(t, err, ErrOutOfRange, in)
	}
}
