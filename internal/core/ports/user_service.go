package ports

import (
	"context"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
)

// AddUserInput carries a Manager-created account. Unlike self-registration
// the role is settable, and the account starts with a generated password that
// the user replaces through the OTP flow.
type AddUserInput struct {
	Name        string
	Email       string
	Password    string
	Cluster     string
	ClusterLead string
	Role        string
}

// UserService covers the user-administration panel.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	AddUser(ctx context.Context, in AddUserInput) (*domain.User, error)
	UpdateRole(ctx context.Context, id uint, role string) error
	UpdateClusterLead(ctx context.Context, id uint, clusterLead string) error
	// ToggleActive flips the soft-delete flag and returns true when the user
	// is now deactivated.
	ToggleActive(ctx context.Context, email string) (bool, error)
}
