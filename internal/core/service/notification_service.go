package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// NotificationService persists dashboard notifications and fans them out to
// connected live clients. Each notification gets a generated uuid so
// acknowledgement targets a stable id rather than a list position.
type NotificationService struct {
	repo        ports.NotificationRepository
	broadcaster ports.Broadcaster
	log         zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, broadcaster ports.Broadcaster, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, broadcaster: broadcaster, log: log}
}

func (s *NotificationService) Record(ctx context.Context, message string) (*domain.Notification, error) {
	n := &domain.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(*n)
	}

	s.log.Debug().Str("notification_id", n.ID).Msg("notification recorded")
	return n, nil
}

func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	return s.repo.List(ctx)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}
