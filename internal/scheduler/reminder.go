// Package scheduler runs the recurring jobs behind the tracker, currently
// just the daily missing-submission reminder.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

const reminderSubject = "Daily Task Reminder"

// Reminder periodically finds active Team Members with no submission for the
// current day and queues one reminder email each. Dispatch is best-effort:
// a failed send affects nobody else and is never replayed the next day.
type Reminder struct {
	users      ports.UserRepository
	dispatcher ports.MailDispatcher
	cc         string
	schedule   string
	cron       *cron.Cron
	log        zerolog.Logger
	now        func() time.Time
}

func NewReminder(users ports.UserRepository, dispatcher ports.MailDispatcher, schedule, cc string, log zerolog.Logger) *Reminder {
	return &Reminder{
		users:      users,
		dispatcher: dispatcher,
		cc:         cc,
		schedule:   schedule,
		cron:       cron.New(),
		log:        log,
		now:        time.Now,
	}
}

// WithClock overrides the scheduler clock. Tests only.
func (r *Reminder) WithClock(now func() time.Time) *Reminder {
	r.now = now
	return r
}

// Start registers the cron entry and launches the scheduler.
func (r *Reminder) Start(ctx context.Context) error {
	if _, err := r.cron.AddFunc(r.schedule, func() {
		if err := r.RunOnce(ctx); err != nil {
			r.log.Error().Err(err).Msg("reminder run failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule reminder job: %w", err)
	}

	r.cron.Start()
	r.log.Info().Str("schedule", r.schedule).Msg("reminder scheduler started")
	return nil
}

// Stop halts the scheduler. Queued sends already handed to the dispatcher
// still drain.
func (r *Reminder) Stop() {
	r.cron.Stop()
	r.log.Info().Msg("reminder scheduler stopped")
}

// RunOnce executes a single reminder sweep for the current day.
func (r *Reminder) RunOnce(ctx context.Context) error {
	today := domain.DateOnly(r.now())

	missing, err := r.users.FindMissingSubmitters(ctx, today)
	if err != nil {
		return fmt.Errorf("reminder sweep: %w", err)
	}
	if len(missing) == 0 {
		r.log.Info().Msg("all users have submitted their tasks for today")
		return nil
	}

	leadEmails, err := r.leadEmailsByName(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("could not resolve cluster lead emails, sending without lead cc")
		leadEmails = map[string]string{}
	}

	for _, user := range missing {
		cc := make([]string, 0, 2)
		if r.cc != "" {
			cc = append(cc, r.cc)
		}
		if lead, ok := leadEmails[user.ClusterLead]; ok && lead != user.Email {
			cc = append(cc, lead)
		}

		r.dispatcher.Enqueue(ports.MailMessage{
			To:      []string{user.Email},
			CC:      cc,
			Subject: reminderSubject,
			Body: fmt.Sprintf("Hi %s,\n\nYou have not submitted your Daily Task records. Please don't forget to fill it before 9 PM.\n\nThanks",
				user.Name),
		})
		r.log.Info().Str("email", user.Email).Msg("reminder queued")
	}

	return nil
}

// leadEmailsByName maps each Cluster Lead's display name to their email, so a
// user's informal "reports to" label resolves to a CC address when possible.
func (r *Reminder) leadEmailsByName(ctx context.Context) (map[string]string, error) {
	all, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}

	leads := make(map[string]string)
	for _, u := range all {
		if u.Role == domain.RoleClusterLead && u.Active() {
			leads[u.Name] = u.Email
		}
	}
	return leads, nil
}
