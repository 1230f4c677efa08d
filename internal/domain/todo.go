package domain

import "time"

// Todo is the single entity this service manages. The datastore is the
// source of truth; instances are request-scoped carriers with no lifecycle
// of their own. Zero-value timestamps mean "not yet persisted".
type Todo struct {
	ID          int64
	Title       string
	Description string
	Completed   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
