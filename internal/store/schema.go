package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS expenses (
    id                   TEXT PRIMARY KEY,
    seq                  INTEGER NOT NULL,
    name                 TEXT NOT NULL,
    amount_cents         INTEGER NOT NULL,
    kind                 TEXT NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
    seq                  INTEGER PRIMARY KEY AUTOINCREMENT,
    total_cents          INTEGER NOT NULL,
    budget_cents         INTEGER NOT NULL,
    remaining_cents      INTEGER NOT NULL,
    notified_at          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expenses_kind ON expenses(kind);
`
