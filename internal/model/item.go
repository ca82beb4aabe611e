package model

import "time"

// Item represents a tracked purchase with its deadlines.
type Item struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Store         string    `json:"store"`
	Category      string    `json:"category"`
	PurchaseDate  time.Time `json:"purchase_date"`
	TotalAmount   float64   `json:"total_amount"`
	ReturnUntil   time.Time `json:"return_until"`
	WarrantyUntil time.Time `json:"warranty_until"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ItemInput carries the user-editable fields of an item. It is the only
// shape that crosses the UI/persistence boundary for writes.
type ItemInput struct {
	Title         string    `json:"title"`
	Store         string    `json:"store"`
	Category      string    `json:"category"`
	PurchaseDate  time.Time `json:"purchase_date"`
	TotalAmount   float64   `json:"total_amount"`
	ReturnUntil   time.Time `json:"return_until"`
	WarrantyUntil time.Time `json:"warranty_until"`
	Notes         string    `json:"notes,omitempty"`
}

// Validate checks that all required fields are present and the amount is
// non-negative. It must pass before any persistence is attempted.
func (in ItemInput) Validate() error {
	var bad []string
	if in.Title == "" {
		bad = append(bad, "title")
	}
	if in.Store == "" {
		bad = append(bad, "store")
	}
	if in.Category == "" {
		bad = append(bad, "category")
	}
	if in.PurchaseDate.IsZero() {
		bad = append(bad, "purchase_date")
	}
	if in.TotalAmount < 0 {
		bad = append(bad, "total_amount")
	}
	if in.ReturnUntil.IsZero() {
		bad = append(bad, "return_until")
	}
	if in.WarrantyUntil.IsZero() {
		bad = append(bad, "warranty_until")
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

// Filter selects items in ListItems. Zero-valued fields impose no
// constraint; all set fields are ANDed.
type Filter struct {
	// Text matches as a substring against title, store and category.
	Text     string
	Store    string
	Category string
	// Start and End bound the purchase date, both inclusive.
	Start time.Time
	End   time.Time
	// DueReturn and DueWarranty match items whose deadline falls on or
	// before the given date.
	DueReturn   time.Time
	DueWarranty time.Time
}
