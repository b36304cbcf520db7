package ports

import (
	"context"
	"time"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
)

// UserRepository defines persistence for user records. Finders return
// deactivated users too; callers decide whether IsDeleted matters.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id uint, role string) error
	UpdateClusterLead(ctx context.Context, id uint, clusterLead string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	// ToggleActive flips the IsDeleted flag and returns the new value.
	ToggleActive(ctx context.Context, email string) (bool, error)
	// FindMissingSubmitters returns active Team Members with no task dated day.
	FindMissingSubmitters(ctx context.Context, day time.Time) ([]domain.User, error)
}
