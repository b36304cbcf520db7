package ports

import (
	"context"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
)

// NotificationRepository persists dashboard notifications. Durable storage
// replaces the earlier in-process list, so restarts and multiple instances do
// not silently drop events.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// List returns all notifications, newest first.
	List(ctx context.Context) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}
