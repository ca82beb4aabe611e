package store

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/proofpal/internal/db"
	"github.com/erazemk/proofpal/internal/model"
)

func TestCountStats(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	at := date("2024-01-16")

	// Return due within the 7-day window.
	soon := testInput("Laptop", "2024-01-10")
	soon.ReturnUntil = date("2024-01-20")
	soon.WarrantyUntil = date("2026-01-10")
	soon.TotalAmount = 100
	CreateItem(ctx, database, soon)

	// Deadlines far in the future, purchased last month.
	far := testInput("Desk", "2023-12-20")
	far.ReturnUntil = date("2024-06-01")
	far.WarrantyUntil = date("2026-06-01")
	far.TotalAmount = 50
	CreateItem(ctx, database, far)

	// Warranty inside the 60-day window, purchased this month.
	watch := testInput("Kettle", "2024-01-05")
	watch.ReturnUntil = date("2024-06-01")
	watch.WarrantyUntil = date("2024-03-01")
	watch.TotalAmount = 25.50
	CreateItem(ctx, database, watch)

	stats, err := CountStats(ctx, database, at)
	if err != nil {
		t.Fatalf("CountStats: %v", err)
	}

	if stats.TotalItems != 3 {
		t.Errorf("total_items = %d, want 3", stats.TotalItems)
	}
	if stats.ReturnsDue != 1 {
		t.Errorf("returns_due = %d, want 1", stats.ReturnsDue)
	}
	if stats.WarrantiesDue != 1 {
		t.Errorf("warranties_due = %d, want 1", stats.WarrantiesDue)
	}
	if stats.MonthlyTotal != 125.50 {
		t.Errorf("monthly_total = %v, want 125.50", stats.MonthlyTotal)
	}
	if len(stats.RecentActions) != 3 {
		t.Errorf("expected 3 recent actions, got %d", len(stats.RecentActions))
	}
}

func TestCountStatsExcludesSentAlerts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	at := date("2024-01-16")

	in := testInput("Laptop", "2024-01-01")
	in.ReturnUntil = date("2024-01-15")
	in.WarrantyUntil = date("2026-01-01")
	item, _ := CreateItem(ctx, database, in)

	stats, _ := CountStats(ctx, database, at)
	if stats.ReturnsDue != 1 {
		t.Fatalf("returns_due before scan = %d, want 1", stats.ReturnsDue)
	}

	// Mark the return alert sent, as a scan would.
	alerts, _ := ListItemAlerts(ctx, database, item.ID)
	for _, a := range alerts {
		if a.Kind == model.AlertKindReturn {
			MarkAlertSent(ctx, database, a.ID, time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC))
		}
	}

	stats, _ = CountStats(ctx, database, at)
	if stats.ReturnsDue != 0 {
		t.Errorf("returns_due after scan = %d, want 0", stats.ReturnsDue)
	}
}

func TestCountStatsEmpty(t *testing.T) {
	database := db.NewTestDB(t)

	stats, err := CountStats(context.Background(), database, date("2024-01-16"))
	if err != nil {
		t.Fatalf("CountStats: %v", err)
	}
	if stats.TotalItems != 0 || stats.MonthlyTotal != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
	if len(stats.RecentActions) != 0 {
		t.Errorf("expected no recent actions, got %d", len(stats.RecentActions))
	}
}

func TestRecentActionsNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if err := LogAction(ctx, database, "test_action", map[string]any{"n": i}); err != nil {
			t.Fatalf("LogAction: %v", err)
		}
	}

	entries, err := RecentActions(ctx, database, 5)
	if err != nil {
		t.Fatalf("RecentActions: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].ID > entries[i-1].ID {
			t.Errorf("entries not newest first: %d before %d", entries[i-1].ID, entries[i].ID)
		}
	}
}
