package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// UserService implements the user-administration panel: listing, adding
// accounts with an explicit role, role/lead edits and soft-delete toggling.
type UserService struct {
	repo     ports.UserRepository
	notifier ports.NotificationService
	log      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, notifier ports.NotificationService, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, notifier: notifier, log: log}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) AddUser(ctx context.Context, in ports.AddUserInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Cluster == "" || in.ClusterLead == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrInvalidInput)
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Cluster:      in.Cluster,
		ClusterLead:  in.ClusterLead,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, fmt.Sprintf("%s was added to cluster %s as %s", created.Name, created.Cluster, created.Role))
	return created, nil
}

func (s *UserService) UpdateRole(ctx context.Context, id uint, role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	s.log.Info().Uint("user_id", id).Str("role", role).Msg("role updated")
	return nil
}

func (s *UserService) UpdateClusterLead(ctx context.Context, id uint, clusterLead string) error {
	if clusterLead == "" {
		return fmt.Errorf("%w: clusterLead is required", domain.ErrInvalidInput)
	}
	return s.repo.UpdateClusterLead(ctx, id, clusterLead)
}

func (s *UserService) ToggleActive(ctx context.Context, email string) (bool, error) {
	deleted, err := s.repo.ToggleActive(ctx, email)
	if err != nil {
		return false, err
	}

	state := "reactivated"
	if deleted {
		state = "deactivated"
	}
	s.record(ctx, fmt.Sprintf("account %s was %s", email, state))
	s.log.Info().Str("email", email).Bool("is_deleted", deleted).Msg("user toggled")
	return deleted, nil
}

// record is best-effort: administration must not fail because the
// notification write did.
func (s *UserService) record(ctx context.Context, msg string) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Record(ctx, msg); err != nil {
		s.log.Warn().Err(err).Msg("failed to record admin notification")
	}
}
