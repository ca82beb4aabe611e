package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Dates (purchase_date, return_until,
// warranty_until, due_on) are ISO YYYY-MM-DD text so they compare lexically;
// timestamps are DATETIME.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id             INTEGER PRIMARY KEY,
    title          TEXT NOT NULL,
    store          TEXT NOT NULL,
    category       TEXT NOT NULL,
    purchase_date  TEXT NOT NULL,
    total_amount   REAL NOT NULL CHECK (total_amount >= 0),
    return_until   TEXT NOT NULL,
    warranty_until TEXT NOT NULL,
    notes          TEXT,
    created_at     DATETIME NOT NULL,
    updated_at     DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS files (
    id          INTEGER PRIMARY KEY,
    item_id     INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    path        TEXT NOT NULL,
    mime        TEXT NOT NULL,
    size        INTEGER NOT NULL,
    checksum    TEXT NOT NULL,
    uploaded_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS alerts (
    id      INTEGER PRIMARY KEY,
    item_id INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    kind    TEXT NOT NULL CHECK (kind IN ('return', 'warranty')),
    due_on  TEXT NOT NULL,
    sent_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_alerts_item_kind ON alerts(item_id, kind);

CREATE TABLE IF NOT EXISTS audit (
    id      INTEGER PRIMARY KEY,
    action  TEXT NOT NULL,
    details TEXT NOT NULL,
    ts      DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
