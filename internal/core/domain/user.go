package domain

import (
	"errors"
	"time"
)

const (
	RoleTeamMember  = "Team Member"
	RoleClusterLead = "Cluster Lead"
	RoleManager     = "Manager"
)

var ErrUserExists = errors.New("email already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidOTP = errors.New("invalid otp")

// ValidRole reports whether role is one of the three enumerated roles.
func ValidRole(role string) bool {
	switch role {
	case RoleTeamMember, RoleClusterLead, RoleManager:
		return true
	}
	return false
}

// User models an actor in the tracker. ClusterLead is the informal
// "reports to" label shown in the user control panel, not a foreign key.
// Users are never hard-deleted: the IsDeleted flag deactivates them while
// keeping their email reserved.
type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Cluster      string    `json:"cluster"`
	ClusterLead  string    `json:"clusterLead"`
	Role         string    `json:"role"`
	IsDeleted    bool      `json:"IsDeleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Active reports whether the user may log in and receive reminders.
func (u *User) Active() bool {
	return !u.IsDeleted
}
