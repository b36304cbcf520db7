package ports

import (
	"context"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
)

// TaskFilter narrows a task listing. Zero values mean "no restriction";
// the service fills exactly one of the fields for non-Manager callers.
type TaskFilter struct {
	AssignedTo string
	Cluster    string
}

// TaskRepository defines persistence for daily submissions. Create must write
// the parent row and all entries in a single transaction: a partial submission
// must never survive a failure.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (uint, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	FindByID(ctx context.Context, id uint) (*domain.Task, error)
	// FindEntry returns the entry together with its parent task, which the
	// service needs for ownership scoping and the same-day edit rule.
	FindEntry(ctx context.Context, entryID uint) (*domain.TaskEntry, *domain.Task, error)
	UpdateEntryActuals(ctx context.Context, entryID uint, actualHour float64, completed bool) error
}
