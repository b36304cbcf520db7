package domain

import (
	"errors"
	"time"
)

// ResourceType values accepted on a daily submission.
const (
	ResourceDelivery = "Delivery"
	ResourceTraining = "Training"
)

// The six task-type categories a line item may carry.
const (
	TaskTypeInternalComms      = "Internal Communication"
	TaskTypeIncidentResolution = "Incident Resolution"
	TaskTypePipelineMonitor    = "Pipeline Monitor/Fix"
	TaskTypeServiceGovernance  = "Service Governance"
	TaskTypeInternalDevConnect = "Internal Dev Connect"
	TaskTypeKTOnboarding       = "KT & Onboarding"
)

var ErrInvalidInput = errors.New("invalid input")
var ErrTaskNotFound = errors.New("task not found")
var ErrEntryNotFound = errors.New("task entry not found")
var ErrForbidden = errors.New("access forbidden")
var ErrEntryLocked = errors.New("entry is no longer editable")

// ValidResourceType reports whether rt is an accepted resource type.
func ValidResourceType(rt string) bool {
	return rt == ResourceDelivery || rt == ResourceTraining
}

// ValidTaskType reports whether tt is one of the six categories.
func ValidTaskType(tt string) bool {
	switch tt {
	case TaskTypeInternalComms, TaskTypeIncidentResolution, TaskTypePipelineMonitor,
		TaskTypeServiceGovernance, TaskTypeInternalDevConnect, TaskTypeKTOnboarding:
		return true
	}
	return false
}

// Task is one daily submission: a parent row owned by the submitting user,
// holding the line items worked that day. Date is date-only; the time portion
// is always midnight UTC.
type Task struct {
	ID           uint        `json:"id"`
	Name         string      `json:"name"`
	Date         time.Time   `json:"date"`
	Cluster      string      `json:"cluster"`
	ResourceType string      `json:"resourceType"`
	AssignedTo   string      `json:"assignedTo"`
	Entries      []TaskEntry `json:"tasks"`
	CreatedAt    time.Time   `json:"created_at"`
}

// TaskEntry is a single piece of work inside a daily submission. ActualHour
// and Completed are mutated after the fact by the owner, only while the parent
// task is still dated "today".
type TaskEntry struct {
	ID              uint    `json:"id"`
	TaskID          uint    `json:"task_id"`
	IncCr           string  `json:"incCr"`
	Product         string  `json:"product"`
	TaskType        string  `json:"taskType"`
	TaskDescription string  `json:"taskDescription"`
	PlannerHour     float64 `json:"plannerHour"`
	ActualHour      float64 `json:"actualHour"`
	Completed       bool    `json:"completed"`
}

// TotalPlannerHour sums the planned hours across all entries.
func (t *Task) TotalPlannerHour() float64 {
	var sum float64
	for _, e := range t.Entries {
		sum += e.PlannerHour
	}
	return sum
}

// TotalActualHour sums the actual hours across all entries.
func (t *Task) TotalActualHour() float64 {
	var sum float64
	for _, e := range t.Entries {
		sum += e.ActualHour
	}
	return sum
}

// CompletionPct is the share of planned hours sitting on completed entries,
// in percent. A task whose planned total is zero reports 0, never NaN.
func (t *Task) CompletionPct() float64 {
	total := t.TotalPlannerHour()
	if total == 0 {
		return 0
	}
	var done float64
	for _, e := range t.Entries {
		if e.Completed {
			done += e.PlannerHour
		}
	}
	return done / total * 100
}

// DateOnly truncates ts to midnight UTC, the canonical form for Task.Date.
func DateOnly(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
