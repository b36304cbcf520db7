package ports

import (
	"context"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
)

// RegisterInput carries a self-service registration. Role is fixed to
// Team Member on this path; AddUser (UserService) is the role-settable one.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Cluster     string
	ClusterLead string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies the password and issues a signed 1-hour token. Unknown
	// email, wrong password and deactivated account all fail identically
	// with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// SendOTP generates a one-time passcode, stores it with a TTL and emails
	// it to the user.
	SendOTP(ctx context.Context, email string) error
	// ResetPassword consumes the passcode and replaces the password hash.
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}
