package model

import "time"

// Alert is a scheduled reminder tied to one item and one deadline kind.
// The synchronizer keeps at most one row per (item, kind). An alert is
// pending while SentAt is nil and DueOn has arrived.
type Alert struct {
	ID     int64      `json:"id"`
	ItemID int64      `json:"item_id"`
	Kind   string     `json:"kind"`
	DueOn  time.Time  `json:"due_on"`
	SentAt *time.Time `json:"sent_at,omitempty"`

	// Joined fields (not always populated).
	ItemTitle string `json:"item_title,omitempty"`
	ItemStore string `json:"item_store,omitempty"`
}

// Alert kinds.
const (
	AlertKindReturn   = "return"
	AlertKindWarranty = "warranty"
)
