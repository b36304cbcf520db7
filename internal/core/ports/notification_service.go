package ports

import (
	"context"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
)

// Broadcaster pushes a recorded notification to every connected live client.
// Delivery is fire-and-forget; offline clients recover by re-fetching the list.
type Broadcaster interface {
	Broadcast(n domain.Notification)
}

// NotificationService records and serves dashboard notifications.
type NotificationService interface {
	// Record persists the message with a generated stable id, then pushes it
	// to connected clients. Persistence failure is returned; push failures
	// are not (best-effort fan-out).
	Record(ctx context.Context, message string) (*domain.Notification, error)
	List(ctx context.Context) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}
