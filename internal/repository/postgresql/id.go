package postgresql

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newID returns a time-ordered UUIDv7, so ordering by id is ordering by
// creation.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

// dateParam sends the calendar day as text so the zone of t never shifts it.
func dateParam(t time.Time) string {
	return t.Format("2006-01-02")
}
