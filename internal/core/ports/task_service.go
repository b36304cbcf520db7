package ports

import (
	"context"
	"time"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
)

// EntryInput is one line item of a new daily submission.
type EntryInput struct {
	IncCr           string
	Product         string
	TaskType        string
	TaskDescription string
	PlannerHour     float64
}

// CreateTaskInput carries a new daily submission. Owner name, email and
// cluster come from the caller's token, never from the payload.
type CreateTaskInput struct {
	Date         time.Time
	ResourceType string
	Entries      []EntryInput
}

// UpdateEntryInput mutates a single entry's after-the-fact fields. Nil means
// "leave unchanged"; ActualHour is required by the handler layer.
type UpdateEntryInput struct {
	ActualHour *float64
	Completed  *bool
}

// TaskView is a task decorated with the aggregate columns the dashboard
// renders next to it.
type TaskView struct {
	domain.Task
	TotalPlannerHour float64 `json:"totalPlannerHour"`
	TotalActualHour  float64 `json:"totalActualHour"`
	CompletionPct    float64 `json:"completionPct"`
}

// TaskService defines the role-scoped use cases over daily submissions.
// Scoping is uniform across List, Get and UpdateEntry: a Team Member touches
// only their own submissions, a Cluster Lead their cluster's, a Manager all.
type TaskService interface {
	Create(ctx context.Context, caller Identity, in CreateTaskInput) (uint, error)
	List(ctx context.Context, caller Identity) ([]TaskView, error)
	Get(ctx context.Context, caller Identity, id uint) (*TaskView, error)
	UpdateEntry(ctx context.Context, caller Identity, entryID uint, in UpdateEntryInput) error
}
