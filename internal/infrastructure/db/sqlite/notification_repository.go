package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m := &notificationModel{
		ID:        n.ID,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) List(ctx context.Context) ([]domain.Notification, error) {
	var models []notificationModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]domain.Notification, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context) error {
	err := r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("read = ?", false).
		Update("read", true).Error
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
