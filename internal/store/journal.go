// Package store provides an in-memory SQLite journal of the current session.
// Nothing is written to disk; the journal lives and dies with the process.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Journal records accepted expenses and ledger notifications so the session
// can be queried with SQL.
type Journal struct {
	db  *sql.DB
	seq int64
}

// Notification is one recorded ledger notification.
type Notification struct {
	Seq           int64
	TotalExpenses decimal.Decimal
	Budget        decimal.Decimal
	Remaining     decimal.Decimal
	At            time.Time
}

// Open creates an empty in-memory journal.
func Open() (*Journal, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}
	// Every pooled connection to :memory: would get its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close releases the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func toCents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// RecordExpense stores an accepted record.
func (j *Journal) RecordExpense(r expense.Record) error {
	j.seq++
	_, err := j.db.Exec(`INSERT OR REPLACE INTO expenses
		(id, seq, name, amount_cents, kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID.String(), j.seq, r.Name, toCents(r.Amount), string(r.Kind),
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording expense: %w", err)
	}
	return nil
}

// Observer returns a ledger observer that appends a notification row.
func (j *Journal) Observer() ledger.Observer {
	return ledger.ObserverFunc(func(totalExpenses, budget decimal.Decimal) {
		if err := j.recordNotification(totalExpenses, budget, time.Now()); err != nil {
			log.Warn().Err(err).Msg("Journal write failed")
		}
	})
}

func (j *Journal) recordNotification(totalExpenses, budget decimal.Decimal, at time.Time) error {
	_, err := j.db.Exec(`INSERT INTO notifications
		(total_cents, budget_cents, remaining_cents, notified_at)
		VALUES (?, ?, ?, ?)`,
		toCents(totalExpenses), toCents(budget), toCents(budget.Sub(totalExpenses)),
		at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording notification: %w", err)
	}
	return nil
}

// KindBreakdown totals recorded expenses per kind. Every kind appears, in
// expense.Kinds order.
func (j *Journal) KindBreakdown() ([]model.KindStats, error) {
	rows, err := j.db.Query(`SELECT kind, COUNT(*), SUM(amount_cents)
		FROM expenses GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	byKind := make(map[string]model.KindStats)
	var grand int64
	for rows.Next() {
		var (
			kind  string
			count int
			cents int64
		)
		if err := rows.Scan(&kind, &count, &cents); err != nil {
			return nil, err
		}
		byKind[kind] = model.KindStats{Kind: kind, Count: count, Total: fromCents(cents)}
		grand += cents
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]model.KindStats, 0, len(expense.Kinds))
	for _, k := range expense.Kinds {
		ks, ok := byKind[string(k)]
		if !ok {
			ks = model.KindStats{Kind: string(k), Total: decimal.Zero}
		}
		if grand > 0 {
			ks.SharePercent = float64(toCents(ks.Total)) / float64(grand)
		}
		out = append(out, ks)
	}
	return out, nil
}

// Notifications returns up to limit of the most recent notifications,
// oldest first. limit <= 0 returns all of them.
func (j *Journal) Notifications(limit int) ([]Notification, error) {
	query := `SELECT seq, total_cents, budget_cents, remaining_cents, notified_at
		FROM notifications ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Notification
	for rows.Next() {
		var (
			n                     Notification
			total, budget, remain int64
			at                    string
		)
		if err := rows.Scan(&n.Seq, &total, &budget, &remain, &at); err != nil {
			return nil, err
		}
		n.TotalExpenses = fromCents(total)
		n.Budget = fromCents(budget)
		n.Remaining = fromCents(remain)
		n.At, _ = time.Parse(time.RFC3339Nano, at)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, k := 0, len(out)-1; i < k; i, k = i+1, k-1 {
		out[i], out[k] = out[k], out[i]
	}
	return out, nil
}

// ExpenseCount returns the number of recorded expenses.
func (j *Journal) ExpenseCount() (int, error) {
	var count int
	err := j.db.QueryRow("SELECT COUNT(*) FROM expenses").Scan(&count)
	return count, err
}
