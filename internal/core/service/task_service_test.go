package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks     map[uint]*domain.Task
	nextTask  uint
	nextEntry uint
	createErr error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[uint]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	clone.Entries = append([]domain.TaskEntry(nil), t.Entries...)
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (uint, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.nextTask++
	clone := cloneTask(task)
	clone.ID = r.nextTask
	for i := range clone.Entries {
		r.nextEntry++
		clone.Entries[i].ID = r.nextEntry
		clone.Entries[i].TaskID = clone.ID
	}
	r.tasks[clone.ID] = clone
	return clone.ID, nil
}

func (r *stubTaskRepo) List(_ context.Context, f ports.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
			continue
		}
		if f.Cluster != "" && t.Cluster != f.Cluster {
			continue
		}
		out = append(out, *cloneTask(t))
	}
	return out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id uint) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) FindEntry(_ context.Context, entryID uint) (*domain.TaskEntry, *domain.Task, error) {
	for _, t := range r.tasks {
		for i := range t.Entries {
			if t.Entries[i].ID == entryID {
				e := t.Entries[i]
				return &e, cloneTask(t), nil
			}
		}
	}
	return nil, nil, domain.ErrEntryNotFound
}

func (r *stubTaskRepo) UpdateEntryActuals(_ context.Context, entryID uint, actualHour float64, completed bool) error {
	for _, t := range r.tasks {
		for i := range t.Entries {
			if t.Entries[i].ID == entryID {
				t.Entries[i].ActualHour = actualHour
				t.Entries[i].Completed = completed
				return nil
			}
		}
	}
	return domain.ErrEntryNotFound
}

type stubNotifier struct {
	recorded []string
}

func (n *stubNotifier) Record(_ context.Context, message string) (*domain.Notification, error) {
	n.recorded = append(n.recorded, message)
	return &domain.Notification{ID: "n1", Message: message}, nil
}

func (n *stubNotifier) List(_ context.Context) ([]domain.Notification, error) { return nil, nil }
func (n *stubNotifier) MarkRead(_ context.Context, _ string) error            { return nil }
func (n *stubNotifier) MarkAllRead(_ context.Context) error                   { return nil }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTaskService(repo *stubTaskRepo, notifier *stubNotifier) *TaskService {
	return NewTaskService(repo, notifier, zerolog.Nop()).WithClock(fixedClock)
}

func memberIdentity(email, cluster string) ports.Identity {
	return ports.Identity{UserID: 1, Name: "Alice", Email: email, Cluster: cluster, Role: domain.RoleTeamMember}
}

func validCreateInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Date:         fixedNow,
		ResourceType: domain.ResourceDelivery,
		Entries: []ports.EntryInput{
			{IncCr: "INC001", Product: "Atlas", TaskType: domain.TaskTypeIncidentResolution, TaskDescription: "triage", PlannerHour: 2},
			{IncCr: "CR042", Product: "Atlas", TaskType: domain.TaskTypeServiceGovernance, TaskDescription: "review", PlannerHour: 3},
		},
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestTaskService_Create_Success(t *testing.T) {
	repo := newStubTaskRepo()
	notifier := &stubNotifier{}
	svc := newTaskService(repo, notifier)
	caller := memberIdentity("alice@example.com", "5")

	id, err := svc.Create(context.Background(), caller, validCreateInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	stored := repo.tasks[id]
	if stored == nil {
		t.Fatalf("task not persisted")
	}
	if stored.AssignedTo != "alice@example.com" || stored.Cluster != "5" || stored.Name != "Alice" {
		t.Fatalf("owner fields must come from the token, got %+v", stored)
	}
	if len(stored.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(stored.Entries))
	}
	if len(notifier.recorded) != 1 {
		t.Fatalf("expected a submission notification, got %v", notifier.recorded)
	}
}

func TestTaskService_Create_Validation(t *testing.T) {
	svc := newTaskService(newStubTaskRepo(), &stubNotifier{})
	caller := memberIdentity("alice@example.com", "5")

	cases := []struct {
		name   string
		mutate func(in *ports.CreateTaskInput)
	}{
		{"missing date", func(in *ports.CreateTaskInput) { in.Date = time.Time{} }},
		{"bad resource type", func(in *ports.CreateTaskInput) { in.ResourceType = "Support" }},
		{"no entries", func(in *ports.CreateTaskInput) { in.Entries = nil }},
		{"missing product", func(in *ports.CreateTaskInput) { in.Entries[0].Product = "" }},
		{"unknown task type", func(in *ports.CreateTaskInput) { in.Entries[1].TaskType = "Misc" }},
		{"negative planned hours", func(in *ports.CreateTaskInput) { in.Entries[0].PlannerHour = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)
			if _, err := svc.Create(context.Background(), caller, in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestTaskService_List_RoleScoping(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo, &stubNotifier{})

	seed := func(email, cluster string) {
		_, err := svc.Create(context.Background(), ports.Identity{
			Name: email, Email: email, Cluster: cluster, Role: domain.RoleTeamMember,
		}, validCreateInput())
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	seed("a@example.com", "5")
	seed("b@example.com", "5")
	seed("c@example.com", "7")

	member, err := svc.List(context.Background(), ports.Identity{Email: "a@example.com", Cluster: "5", Role: domain.RoleTeamMember})
	if err != nil {
		t.Fatalf("member list failed: %v", err)
	}
	if len(member) != 1 || member[0].AssignedTo != "a@example.com" {
		t.Fatalf("team member must only see own tasks, got %d", len(member))
	}

	lead, err := svc.List(context.Background(), ports.Identity{Email: "lead@example.com", Cluster: "5", Role: domain.RoleClusterLead})
	if err != nil {
		t.Fatalf("lead list failed: %v", err)
	}
	if len(lead) != 2 {
		t.Fatalf("cluster lead must see own cluster only, got %d", len(lead))
	}
	for _, v := range lead {
		if v.Cluster != "5" {
			t.Fatalf("lead list leaked cluster %s", v.Cluster)
		}
	}

	manager, err := svc.List(context.Background(), ports.Identity{Email: "m@example.com", Role: domain.RoleManager})
	if err != nil {
		t.Fatalf("manager list failed: %v", err)
	}
	if len(manager) != 3 {
		t.Fatalf("manager must see all tasks, got %d", len(manager))
	}

	// A lead token missing its cluster claim must not widen to manager
	// visibility; it collapses to own-submission scope.
	bareLead, err := svc.List(context.Background(), ports.Identity{Email: "a@example.com", Role: domain.RoleClusterLead})
	if err != nil {
		t.Fatalf("bare lead list failed: %v", err)
	}
	if len(bareLead) != 1 || bareLead[0].AssignedTo != "a@example.com" {
		t.Fatalf("cluster-less lead must only see own tasks, got %d", len(bareLead))
	}
}

func TestTaskService_List_TotalPlannerHour(t *testing.T) {
	svc := newTaskService(newStubTaskRepo(), &stubNotifier{})
	caller := memberIdentity("a@example.com", "5")

	if _, err := svc.Create(context.Background(), caller, validCreateInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	views, err := svc.List(context.Background(), caller)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one task, got %d", len(views))
	}
	if views[0].TotalPlannerHour != 5 {
		t.Fatalf("expected totalPlannerHour 5, got %v", views[0].TotalPlannerHour)
	}
}

func TestTaskService_CompletionPct_ZeroPlannedIsZero(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo, &stubNotifier{})
	caller := memberIdentity("a@example.com", "5")

	in := validCreateInput()
	in.Entries = []ports.EntryInput{
		{IncCr: "INC9", Product: "Atlas", TaskType: domain.TaskTypeInternalComms, TaskDescription: "sync", PlannerHour: 0},
	}
	id, err := svc.Create(context.Background(), caller, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	view, err := svc.Get(context.Background(), caller, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.CompletionPct != 0 {
		t.Fatalf("zero planned hours must report 0 pct, got %v", view.CompletionPct)
	}
}

func TestTaskService_Get_ScopingEnforced(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo, &stubNotifier{})

	id, err := svc.Create(context.Background(), memberIdentity("a@example.com", "5"), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), memberIdentity("other@example.com", "5"), id); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign member, got %v", err)
	}
	if _, err := svc.Get(context.Background(), ports.Identity{Email: "l@example.com", Cluster: "9", Role: domain.RoleClusterLead}, id); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other-cluster lead, got %v", err)
	}
	if _, err := svc.Get(context.Background(), ports.Identity{Email: "m@example.com", Role: domain.RoleManager}, id); err != nil {
		t.Fatalf("manager must see any task: %v", err)
	}
	if _, err := svc.Get(context.Background(), memberIdentity("a@example.com", "5"), 999); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_UpdateEntry(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo, &stubNotifier{})
	caller := memberIdentity("a@example.com", "5")

	id, err := svc.Create(context.Background(), caller, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	entryID := repo.tasks[id].Entries[0].ID

	hours := 1.5
	done := true
	if err := svc.UpdateEntry(context.Background(), caller, entryID, ports.UpdateEntryInput{ActualHour: &hours, Completed: &done}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if e := repo.tasks[id].Entries[0]; e.ActualHour != 1.5 || !e.Completed {
		t.Fatalf("entry not updated: %+v", e)
	}

	// actualHour missing.
	if err := svc.UpdateEntry(context.Background(), caller, entryID, ports.UpdateEntryInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without actualHour, got %v", err)
	}

	// Unknown entry.
	if err := svc.UpdateEntry(context.Background(), caller, 999, ports.UpdateEntryInput{ActualHour: &hours}); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	// Foreign caller.
	if err := svc.UpdateEntry(context.Background(), memberIdentity("other@example.com", "5"), entryID, ports.UpdateEntryInput{ActualHour: &hours}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_UpdateEntry_LockedAfterDayRollover(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo, &stubNotifier{})
	caller := memberIdentity("a@example.com", "5")

	id, err := svc.Create(context.Background(), caller, validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	entryID := repo.tasks[id].Entries[0].ID

	svc.WithClock(func() time.Time { return fixedNow.AddDate(0, 0, 1) })

	hours := 2.0
	if err := svc.UpdateEntry(context.Background(), caller, entryID, ports.UpdateEntryInput{ActualHour: &hours}); !errors.Is(err, domain.ErrEntryLocked) {
		t.Fatalf("expected ErrEntryLocked after day rollover, got %v", err)
	}
}
