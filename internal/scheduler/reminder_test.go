package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

type stubReminderRepo struct {
	users   []domain.User
	missing []domain.User
	lastDay time.Time
}

func (s *stubReminderRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (s *stubReminderRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubReminderRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubReminderRepo) List(ctx context.Context) ([]domain.User, error) {
	return s.users, nil
}

func (s *stubReminderRepo) UpdateRole(ctx context.Context, id uint, role string) error { return nil }

func (s *stubReminderRepo) UpdateClusterLead(ctx context.Context, id uint, clusterLead string) error {
	return nil
}

func (s *stubReminderRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return nil
}

func (s *stubReminderRepo) ToggleActive(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (s *stubReminderRepo) FindMissingSubmitters(ctx context.Context, day time.Time) ([]domain.User, error) {
	s.lastDay = day
	return s.missing, nil
}

type captureDispatcher struct {
	sent []ports.MailMessage
}

func (c *captureDispatcher) Enqueue(msg ports.MailMessage) {
	c.sent = append(c.sent, msg)
}

func TestReminderRunOnce(t *testing.T) {
	lead := domain.User{ID: 1, Name: "Priya Nair", Email: "priya@corp.test", Cluster: "Payments", Role: domain.RoleClusterLead}
	missing := domain.User{ID: 2, Name: "Arun Kumar", Email: "arun@corp.test", Cluster: "Payments", ClusterLead: "Priya Nair", Role: domain.RoleTeamMember}

	repo := &stubReminderRepo{
		users:   []domain.User{lead, missing},
		missing: []domain.User{missing},
	}
	disp := &captureDispatcher{}

	fixed := time.Date(2025, time.June, 12, 16, 55, 0, 0, time.UTC)
	rem := NewReminder(repo, disp, "55 16 * * MON-FRI", "manager@corp.test", zerolog.Nop()).
		WithClock(func() time.Time { return fixed })

	if err := rem.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	wantDay := time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC)
	if !repo.lastDay.Equal(wantDay) {
		t.Fatalf("queried day = %v, want %v", repo.lastDay, wantDay)
	}

	if len(disp.sent) != 1 {
		t.Fatalf("queued %d messages, want 1", len(disp.sent))
	}
	msg := disp.sent[0]
	if len(msg.To) != 1 || msg.To[0] != "arun@corp.test" {
		t.Fatalf("To = %v, want arun@corp.test", msg.To)
	}
	if len(msg.CC) != 2 || msg.CC[0] != "manager@corp.test" || msg.CC[1] != "priya@corp.test" {
		t.Fatalf("CC = %v, want configured address plus cluster lead", msg.CC)
	}
	if msg.Subject != reminderSubject {
		t.Fatalf("Subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Hi Arun Kumar,") {
		t.Fatalf("body missing greeting: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "before 9 PM") {
		t.Fatalf("body missing deadline: %q", msg.Body)
	}
}

func TestReminderRunOnceNobodyMissing(t *testing.T) {
	repo := &stubReminderRepo{}
	disp := &captureDispatcher{}

	rem := NewReminder(repo, disp, "55 16 * * MON-FRI", "", zerolog.Nop())
	if err := rem.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if len(disp.sent) != 0 {
		t.Fatalf("queued %d messages, want none", len(disp.sent))
	}
}

func TestReminderUnknownLeadStillSends(t *testing.T) {
	missing := domain.User{ID: 3, Name: "Dev Patel", Email: "dev@corp.test", ClusterLead: "Someone Gone", Role: domain.RoleTeamMember}
	repo := &stubReminderRepo{missing: []domain.User{missing}}
	disp := &captureDispatcher{}

	rem := NewReminder(repo, disp, "55 16 * * MON-FRI", "manager@corp.test", zerolog.Nop())
	if err := rem.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if len(disp.sent) != 1 {
		t.Fatalf("queued %d messages, want 1", len(disp.sent))
	}
	if got := disp.sent[0].CC; len(got) != 1 || got[0] != "manager@corp.test" {
		t.Fatalf("CC = %v, want only the configured address", got)
	}
}
