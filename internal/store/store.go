package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when an operation references an item, file or
// alert id that does not exist.
var ErrNotFound = errors.New("not found")

// querier is satisfied by both *sql.DB and *sql.Tx, so the alert
// synchronizer and audit log can run inside an item transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// now returns the current UTC time at second precision, matching what is
// stored in timestamp columns.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// formatDate renders a date column value. Dates are stored as ISO
// YYYY-MM-DD text so SQL comparisons are lexical.
func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// parseDate parses a date column value back into a midnight-UTC time.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}
