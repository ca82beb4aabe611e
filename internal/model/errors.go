package model

import (
	"fmt"
	"strings"
)

// ValidationError reports required fields that are missing or invalid.
// It is returned before any persistence is attempted, so a failing input
// is never partially stored.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}
