package cmd

import (
	"bytes"
	"context"
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
)

func TestWriteReport(t *testing.T) {
	s := newTestSession(t)
	dir := t.TempDir()
	modern := filepath.Join(dir, "march.yaml")
	legacy := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(modern, []byte("- name: Rent\n  amount: 900\n  kind: fixed\n- name: Broken\n  amount: -1\n"), 0o600))
	require.NoError(t, os.WriteFile(legacy, []byte(`[{"expenseName": "Coffee", "amountSpent": 4.5}]`), 0o600))

	s.ledger.SetBudget(decimal.NewFromInt(800))
	var progress bytes.Buffer
	result := loadFiles(&progress, []string{modern, legacy}, expense.Variable)
	s.tracker.Import(result.Records)

	var out bytes.Buffer
	require.NoError(t, writeReport(&out, s, result))
	text := out.String()

	assert.Contains(t, progress.String(), "Parsed 2 expenses across 2 files")
	assert.Contains(t, progress.String(), "Skipped 1 invalid rows")
	assert.Contains(t, text, "BUDGET REPORT")
	assert.Contains(t, text, "Over Budget!")
	assert.Contains(t, text, "$904.50")
	assert.Contains(t, text, "Coffee")
	assert.Contains(t, text, "legacy")
}

func TestWriteReportEmpty(t *testing.T) {
	s := newTestSession(t)
	var progress, out bytes.Buffer
	result := loadFiles(&progress, []string{filepath.Join(t.TempDir(), "missing.yaml")}, expense.Variable)

	require.NoError(t, writeReport(&out, s, result))
	assert.Contains(t, out.String(), "No expenses found")
}

func TestReportWithoutBudgetWarnsOnce(t *testing.T) {
	var logs bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&logs).Level(zerolog.WarnLevel)
	t.Cleanup(func() { log.Logger = prev })

	s, err := openSession(context.Background(), config.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	var rows strings.Builder
	for i := 0; i < 20; i++ {
		rows.WriteString("- name: Item\n  amount: 3\n")
	}
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rows.String()), 0o600))

	var progress bytes.Buffer
	result := loadFiles(&progress, []string{path}, expense.Variable)
	assert.Equal(t, 20, s.tracker.Import(result.Records))

	assert.Equal(t, 1, strings.Count(logs.String(), "Updated expenses"), logs.String())
}
