package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/erazemk/proofpal/internal/model"
)

// LogAction appends an audit entry. The audit table is the only durable
// record of past actions, so failures are always surfaced, never swallowed.
// Accepts a transaction so the entry commits atomically with the mutation
// it describes.
func LogAction(ctx context.Context, q querier, action string, details map[string]any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encoding audit details: %w", err)
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO audit (action, details, ts) VALUES (?, ?, ?)`,
		action, string(payload), now(),
	)
	if err != nil {
		return fmt.Errorf("logging action %q: %w", action, err)
	}
	return nil
}

// RecentActions returns the latest audit entries, newest first.
func RecentActions(ctx context.Context, q querier, limit int) ([]model.AuditEntry, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, action, details, ts FROM audit ORDER BY ts DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var entry model.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.Details, &entry.TS); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
