package domain

import (
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is a dashboard event message. IDs are generated, stable
// identifiers: acknowledgement targets the id, never a list position, so a
// concurrent insert between a client's fetch and its mark-read call cannot
// flip the wrong entry.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
