package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// TaskService implements role-scoped CRUD over daily submissions.
type TaskService struct {
	repo     ports.TaskRepository
	notifier ports.NotificationService
	log      zerolog.Logger
	// now is injected so the same-day edit rule is testable.
	now func() time.Time
}

func NewTaskService(repo ports.TaskRepository, notifier ports.NotificationService, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, notifier: notifier, log: log, now: time.Now}
}

// WithClock overrides the service clock. Tests only.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// Create persists one parent row plus all entries in a single transaction and
// records a dashboard notification. Owner identity comes from the token.
func (s *TaskService) Create(ctx context.Context, caller ports.Identity, in ports.CreateTaskInput) (uint, error) {
	if in.Date.IsZero() || !domain.ValidResourceType(in.ResourceType) || len(in.Entries) == 0 {
		return 0, fmt.Errorf("%w: date, resourceType and at least one entry are required", domain.ErrInvalidInput)
	}

	task := &domain.Task{
		Name:         caller.Name,
		Date:         domain.DateOnly(in.Date),
		Cluster:      caller.Cluster,
		ResourceType: in.ResourceType,
		AssignedTo:   caller.Email,
		CreatedAt:    s.now().UTC(),
	}

	for i, e := range in.Entries {
		if e.IncCr == "" || e.Product == "" || e.TaskDescription == "" {
			return 0, fmt.Errorf("%w: entry %d is incomplete", domain.ErrInvalidInput, i+1)
		}
		if !domain.ValidTaskType(e.TaskType) {
			return 0, fmt.Errorf("%w: entry %d has an unknown task type", domain.ErrInvalidInput, i+1)
		}
		if e.PlannerHour < 0 {
			return 0, fmt.Errorf("%w: entry %d has negative planned hours", domain.ErrInvalidInput, i+1)
		}
		task.Entries = append(task.Entries, domain.TaskEntry{
			IncCr:           e.IncCr,
			Product:         e.Product,
			TaskType:        e.TaskType,
			TaskDescription: e.TaskDescription,
			PlannerHour:     e.PlannerHour,
		})
	}

	id, err := s.repo.Create(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Str("assigned_to", caller.Email).Msg("failed to create task")
		return 0, err
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("%s submitted daily tasks for %s", caller.Name, task.Date.Format("2006-01-02"))
		if _, nerr := s.notifier.Record(ctx, msg); nerr != nil {
			s.log.Warn().Err(nerr).Msg("failed to record submission notification")
		}
	}

	s.log.Info().Uint("task_id", id).Str("assigned_to", caller.Email).Msg("task created")
	return id, nil
}

// List returns the caller's visible tasks with aggregate columns attached.
func (s *TaskService) List(ctx context.Context, caller ports.Identity) ([]ports.TaskView, error) {
	tasks, err := s.repo.List(ctx, scopeFilter(caller))
	if err != nil {
		return nil, err
	}

	views := make([]ports.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, toView(t))
	}
	return views, nil
}

// Get applies the same scoping rule as List: out-of-scope tasks come back as
// ErrForbidden, not as a leak of their contents.
func (s *TaskService) Get(ctx context.Context, caller ports.Identity, id uint) (*ports.TaskView, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !visible(caller, task) {
		return nil, domain.ErrForbidden
	}

	v := toView(*task)
	return &v, nil
}

// UpdateEntry mutates one entry's actual hours / completed flag. The caller
// must be in scope for the parent task, and the parent must still be dated
// today: actual hours lock as soon as the day rolls over.
func (s *TaskService) UpdateEntry(ctx context.Context, caller ports.Identity, entryID uint, in ports.UpdateEntryInput) error {
	if in.ActualHour == nil {
		return fmt.Errorf("%w: actualHour is required", domain.ErrInvalidInput)
	}
	if *in.ActualHour < 0 {
		return fmt.Errorf("%w: actualHour must not be negative", domain.ErrInvalidInput)
	}

	entry, parent, err := s.repo.FindEntry(ctx, entryID)
	if err != nil {
		return err
	}

	if !visible(caller, parent) {
		return domain.ErrForbidden
	}

	if !parent.Date.Equal(domain.DateOnly(s.now())) {
		return domain.ErrEntryLocked
	}

	completed := entry.Completed
	if in.Completed != nil {
		completed = *in.Completed
	}

	if err := s.repo.UpdateEntryActuals(ctx, entryID, *in.ActualHour, completed); err != nil {
		return err
	}

	s.log.Info().Uint("entry_id", entryID).Float64("actual_hour", *in.ActualHour).Msg("entry actuals updated")
	return nil
}

// scopeFilter translates the caller's role into a repository filter. A
// Cluster Lead token without a cluster claim falls back to own-submission
// scope; an empty cluster must never widen visibility.
func scopeFilter(caller ports.Identity) ports.TaskFilter {
	switch caller.Role {
	case domain.RoleManager:
		return ports.TaskFilter{}
	case domain.RoleClusterLead:
		if caller.Cluster == "" {
			return ports.TaskFilter{AssignedTo: caller.Email}
		}
		return ports.TaskFilter{Cluster: caller.Cluster}
	default:
		return ports.TaskFilter{AssignedTo: caller.Email}
	}
}

// visible reports whether the caller's scope covers the task.
func visible(caller ports.Identity, t *domain.Task) bool {
	switch caller.Role {
	case domain.RoleManager:
		return true
	case domain.RoleClusterLead:
		if caller.Cluster == "" {
			return t.AssignedTo == caller.Email
		}
		return t.Cluster == caller.Cluster
	default:
		return t.AssignedTo == caller.Email
	}
}

func toView(t domain.Task) ports.TaskView {
	return ports.TaskView{
		Task:             t,
		TotalPlannerHour: t.TotalPlannerHour(),
		TotalActualHour:  t.TotalActualHour(),
		CompletionPct:    t.CompletionPct(),
	}
}
