package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/proofpal/internal/model"
)

// syncAlerts keeps exactly one alert per (item, kind) in lockstep with the
// item's deadlines. An existing row gets the new due date and its sent
// timestamp cleared, so an edit always re-arms the reminder, even one that
// already fired. A missing row is inserted unsent. Idempotent.
func syncAlerts(ctx context.Context, q querier, itemID int64, returnUntil, warrantyUntil time.Time) error {
	for _, a := range []struct {
		kind string
		due  time.Time
	}{
		{model.AlertKindReturn, returnUntil},
		{model.AlertKindWarranty, warrantyUntil},
	} {
		var id int64
		err := q.QueryRowContext(ctx,
			`SELECT id FROM alerts WHERE item_id = ? AND kind = ?`,
			itemID, a.kind,
		).Scan(&id)
		switch {
		case err == sql.ErrNoRows:
			_, err = q.ExecContext(ctx,
				`INSERT INTO alerts (item_id, kind, due_on) VALUES (?, ?, ?)`,
				itemID, a.kind, formatDate(a.due),
			)
			if err != nil {
				return fmt.Errorf("inserting %s alert: %w", a.kind, err)
			}
		case err != nil:
			return fmt.Errorf("looking up %s alert: %w", a.kind, err)
		default:
			_, err = q.ExecContext(ctx,
				`UPDATE alerts SET due_on = ?, sent_at = NULL WHERE id = ?`,
				formatDate(a.due), id,
			)
			if err != nil {
				return fmt.Errorf("updating %s alert: %w", a.kind, err)
			}
		}
	}
	return nil
}

// ListDueAlerts returns unsent alerts whose due date has arrived, joined
// with the owning item's title and store for the reminder text, soonest
// first.
func ListDueAlerts(ctx context.Context, db *sql.DB, today time.Time) ([]model.Alert, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT a.id, a.item_id, a.kind, a.due_on, a.sent_at, i.title, i.store
		 FROM alerts a
		 JOIN items i ON i.id = a.item_id
		 WHERE a.sent_at IS NULL AND a.due_on <= ?
		 ORDER BY a.due_on, a.id`,
		formatDate(today),
	)
	if err != nil {
		return nil, fmt.Errorf("listing due alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		var alert model.Alert
		var due string
		if err := rows.Scan(&alert.ID, &alert.ItemID, &alert.Kind, &due, &alert.SentAt,
			&alert.ItemTitle, &alert.ItemStore); err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		if alert.DueOn, err = parseDate(due); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

// ListItemAlerts returns the alerts for one item, return kind first.
func ListItemAlerts(ctx context.Context, db *sql.DB, itemID int64) ([]model.Alert, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, kind, due_on, sent_at FROM alerts
		 WHERE item_id = ? ORDER BY kind, id`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		var alert model.Alert
		var due string
		if err := rows.Scan(&alert.ID, &alert.ItemID, &alert.Kind, &due, &alert.SentAt); err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		if alert.DueOn, err = parseDate(due); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

// MarkAlertSent stamps an alert as sent.
func MarkAlertSent(ctx context.Context, db *sql.DB, id int64, sentAt time.Time) error {
	result, err := db.ExecContext(ctx,
		`UPDATE alerts SET sent_at = ? WHERE id = ?`, sentAt, id,
	)
	if err != nil {
		return fmt.Errorf("marking alert sent: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking mark result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("alert %d: %w", id, ErrNotFound)
	}
	return nil
}
