package alerts

import (
	"fmt"
	"log/slog"
	"os"
)

// Notifier shows a reminder to the user. The desktop toast mechanism is an
// external collaborator behind this interface; environments without one use
// the console or log fallbacks below.
type Notifier interface {
	Notify(title, message string) error
}

// ConsoleNotifier prints reminders to stdout.
type ConsoleNotifier struct{}

func (ConsoleNotifier) Notify(title, message string) error {
	_, err := fmt.Fprintf(os.Stdout, "[ALERT] %s: %s\n", title, message)
	return err
}

// LogNotifier writes reminders to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(title, message string) error {
	slog.Info("alert", "title", title, "message", message)
	return nil
}
