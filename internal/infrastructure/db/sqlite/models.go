package sqlite

import (
	"time"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
)

// Storage-layer rows. The domain stays free of gorm tags; these models map
// one-to-one onto the tables and convert at the repository boundary.

type userModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Cluster      string
	ClusterLead  string
	Role         string `gorm:"not null"`
	IsDeleted    bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type taskModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"not null"`
	Date         time.Time `gorm:"index;not null"`
	Cluster      string    `gorm:"index"`
	ResourceType string
	AssignedTo   string `gorm:"index"`
	Entries      []entryModel `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
}

func (taskModel) TableName() string { return "tasks" }

type entryModel struct {
	ID              uint `gorm:"primaryKey"`
	TaskID          uint `gorm:"index;not null"`
	IncCr           string
	Product         string
	TaskType        string `gorm:"index"`
	TaskDescription string
	PlannerHour     float64 `gorm:"not null;default:0"`
	ActualHour      float64 `gorm:"not null;default:0"`
	Completed       bool    `gorm:"not null;default:false"`
}

func (entryModel) TableName() string { return "task_entries" }

type notificationModel struct {
	ID        string `gorm:"primaryKey"`
	Message   string `gorm:"not null"`
	Read      bool   `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"index"`
}

func (notificationModel) TableName() string { return "notifications" }

// --- converters ---

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Cluster:      m.Cluster,
		ClusterLead:  m.ClusterLead,
		Role:         m.Role,
		IsDeleted:    m.IsDeleted,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func userFromDomain(u *domain.User) *userModel {
	return &userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Cluster:      u.Cluster,
		ClusterLead:  u.ClusterLead,
		Role:         u.Role,
		IsDeleted:    u.IsDeleted,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *taskModel) toDomain() domain.Task {
	t := domain.Task{
		ID:           m.ID,
		Name:         m.Name,
		Date:         m.Date.UTC(),
		Cluster:      m.Cluster,
		ResourceType: m.ResourceType,
		AssignedTo:   m.AssignedTo,
		CreatedAt:    m.CreatedAt,
	}
	for _, e := range m.Entries {
		t.Entries = append(t.Entries, e.toDomain())
	}
	return t
}

func (m *entryModel) toDomain() domain.TaskEntry {
	return domain.TaskEntry{
		ID:              m.ID,
		TaskID:          m.TaskID,
		IncCr:           m.IncCr,
		Product:         m.Product,
		TaskType:        m.TaskType,
		TaskDescription: m.TaskDescription,
		PlannerHour:     m.PlannerHour,
		ActualHour:      m.ActualHour,
		Completed:       m.Completed,
	}
}

func taskFromDomain(t *domain.Task) *taskModel {
	m := &taskModel{
		Name:         t.Name,
		Date:         t.Date,
		Cluster:      t.Cluster,
		ResourceType: t.ResourceType,
		AssignedTo:   t.AssignedTo,
		CreatedAt:    t.CreatedAt,
	}
	for _, e := range t.Entries {
		m.Entries = append(m.Entries, entryModel{
			IncCr:           e.IncCr,
			Product:         e.Product,
			TaskType:        e.TaskType,
			TaskDescription: e.TaskDescription,
			PlannerHour:     e.PlannerHour,
			ActualHour:      e.ActualHour,
			Completed:       e.Completed,
		})
	}
	return m
}

func (m *notificationModel) toDomain() domain.Notification {
	return domain.Notification{
		ID:        m.ID,
		Message:   m.Message,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}
