package alerts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/erazemk/proofpal/internal/model"
	"github.com/erazemk/proofpal/internal/store"
)

// Scanner sweeps for alerts whose due date has arrived and sends each one
// exactly once. Each sweep is independent: a missed tick loses nothing,
// since alerts stay pending until a scan marks them sent.
type Scanner struct {
	DB       *sql.DB
	Notifier Notifier

	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// NewScanner returns a scanner over the given database. A nil notifier
// falls back to the console.
func NewScanner(db *sql.DB, notifier Notifier) *Scanner {
	if notifier == nil {
		notifier = ConsoleNotifier{}
	}
	return &Scanner{DB: db, Notifier: notifier}
}

func (s *Scanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Scan finds all due, unsent alerts, notifies for each and marks it sent.
// A failed notification degrades to a log line; it never blocks the mark
// or the remaining alerts. Returns the number of alerts processed.
func (s *Scanner) Scan(ctx context.Context) (int, error) {
	nowTS := s.now()

	due, err := store.ListDueAlerts(ctx, s.DB, nowTS)
	if err != nil {
		return 0, err
	}

	for _, alert := range due {
		title, message := reminderText(alert)
		if err := s.Notifier.Notify(title, message); err != nil {
			slog.Warn("notification failed", "alert_id", alert.ID, "error", err)
		}
		if err := store.MarkAlertSent(ctx, s.DB, alert.ID, nowTS); err != nil {
			return 0, err
		}
	}

	return len(due), nil
}

// reminderText builds the notification for one due alert.
func reminderText(alert model.Alert) (title, message string) {
	label := "Warranty"
	if alert.Kind == model.AlertKindReturn {
		label = "Return"
	}
	title = fmt.Sprintf("%s deadline", label)
	message = fmt.Sprintf("%s at %s (due %s)",
		alert.ItemTitle, alert.ItemStore, alert.DueOn.Format(time.DateOnly))
	return title, message
}
