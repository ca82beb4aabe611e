package model

import "time"

// AuditEntry is one row of the append-only action history. Entries are
// never updated or deleted, so they survive the item they describe.
type AuditEntry struct {
	ID      int64     `json:"id"`
	Action  string    `json:"action"`
	Details string    `json:"details"`
	TS      time.Time `json:"ts"`
}

// Audit actions.
const (
	ActionItemCreated = "item_created"
	ActionItemUpdated = "item_updated"
	ActionItemDeleted = "item_deleted"
	ActionFileAdded   = "file_added"
	ActionFileDeleted = "file_deleted"
)

// Stats is the dashboard rollup.
type Stats struct {
	TotalItems    int          `json:"total_items"`
	ReturnsDue    int          `json:"returns_due"`
	WarrantiesDue int          `json:"warranties_due"`
	MonthlyTotal  float64      `json:"monthly_total"`
	RecentActions []AuditEntry `json:"recent_actions"`
}
