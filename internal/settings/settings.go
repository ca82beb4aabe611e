// Package settings persists user preferences as a small JSON file next to
// the database.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// UserSettings are the user preferences: theme choice, default deadline
// offsets applied to new purchases, and the last-opened timestamp.
type UserSettings struct {
	Theme          string `json:"theme"`
	ReturnDays     int    `json:"return_days"`
	WarrantyMonths int    `json:"warranty_months"`
	LastOpened     string `json:"last_opened,omitempty"`
}

// Defaults returns the out-of-the-box preferences.
func Defaults() UserSettings {
	return UserSettings{
		Theme:          "light",
		ReturnDays:     14,
		WarrantyMonths: 24,
	}
}

// Load reads preferences from path. A missing or unreadable file yields the
// defaults: preferences are never a reason to fail startup.
func Load(path string) UserSettings {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var loaded UserSettings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return s
	}

	if loaded.Theme != "" {
		s.Theme = loaded.Theme
	}
	if loaded.ReturnDays > 0 {
		s.ReturnDays = loaded.ReturnDays
	}
	if loaded.WarrantyMonths > 0 {
		s.WarrantyMonths = loaded.WarrantyMonths
	}
	s.LastOpened = loaded.LastOpened

	return s
}

// Save writes preferences to path, creating parent directories as needed.
func Save(s UserSettings, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// DefaultReturnDate computes the default return deadline for a purchase.
func DefaultReturnDate(purchase time.Time, days int) time.Time {
	return purchase.AddDate(0, 0, days)
}

// DefaultWarrantyDate computes the default warranty deadline. Unlike
// time.AddDate, overshooting a short month clamps to its last day:
// Jan 31 + 1 month is Feb 28, not Mar 3.
func DefaultWarrantyDate(purchase time.Time, months int) time.Time {
	y, m, d := purchase.Date()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, purchase.Location())
	if last := daysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, purchase.Location())
}

// daysIn returns the number of days in a month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
