package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/proofpal/internal/model"
)

// Deadline windows for the dashboard counters.
const (
	returnWindowDays   = 7
	warrantyWindowDays = 60
)

// recentActionLimit is how many audit entries the dashboard shows.
const recentActionLimit = 5

// CountStats returns the dashboard rollup as of the given time. The
// deadline counters only count items whose alert is still unsent, so an
// item drops out of the counter once its reminder fired.
func CountStats(ctx context.Context, db *sql.DB, at time.Time) (*model.Stats, error) {
	stats := &model.Stats{}

	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&stats.TotalItems)
	if err != nil {
		return nil, fmt.Errorf("counting items: %w", err)
	}

	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items i
		 JOIN alerts a ON a.item_id = i.id AND a.kind = ?
		 WHERE a.sent_at IS NULL AND a.due_on <= ?`,
		model.AlertKindReturn, formatDate(at.AddDate(0, 0, returnWindowDays)),
	).Scan(&stats.ReturnsDue)
	if err != nil {
		return nil, fmt.Errorf("counting due returns: %w", err)
	}

	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items i
		 JOIN alerts a ON a.item_id = i.id AND a.kind = ?
		 WHERE a.sent_at IS NULL AND a.due_on <= ?`,
		model.AlertKindWarranty, formatDate(at.AddDate(0, 0, warrantyWindowDays)),
	).Scan(&stats.WarrantiesDue)
	if err != nil {
		return nil, fmt.Errorf("counting due warranties: %w", err)
	}

	// Purchases in the current calendar month. The date columns are ISO
	// text, so the month is the first seven characters.
	err = db.QueryRowContext(ctx,
		`SELECT IFNULL(SUM(total_amount), 0) FROM items WHERE substr(purchase_date, 1, 7) = ?`,
		at.Format("2006-01"),
	).Scan(&stats.MonthlyTotal)
	if err != nil {
		return nil, fmt.Errorf("summing monthly total: %w", err)
	}

	stats.RecentActions, err = RecentActions(ctx, db, recentActionLimit)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
