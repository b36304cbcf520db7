package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// StatsService serves the dashboard rollups. It owns range defaulting and
// result ordering; the grouped sums themselves run in the store.
type StatsService struct {
	repo ports.StatsRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewStatsService(repo ports.StatsRepository, log zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, log: log, now: time.Now}
}

// WithClock overrides the service clock. Tests only.
func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

// Weekly rolls up planned vs. actual hours per owner. The range defaults to
// the trailing seven days when unset.
func (s *StatsService) Weekly(ctx context.Context, q ports.StatsQuery) ([]ports.OwnerStats, error) {
	end := q.End
	if end.IsZero() {
		end = s.now().UTC()
	} else {
		// The caller's end date is inclusive; the store bound is exclusive,
		// so move it to the following midnight.
		end = domain.DateOnly(end).AddDate(0, 0, 1)
	}
	start := q.Start
	if start.IsZero() {
		start = end.AddDate(0, 0, -7)
	}

	rows, err := s.repo.OwnerTotals(ctx, ports.StatsRange{From: start, To: end, TaskTypes: q.TaskTypes})
	if err != nil {
		return nil, err
	}

	sortOwnerStats(rows, q.SortBy)
	return rows, nil
}

// Monthly covers the current calendar month and joins each owner's role.
func (s *StatsService) Monthly(ctx context.Context, q ports.StatsQuery) ([]ports.OwnerStats, error) {
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := s.repo.OwnerTotalsWithRole(ctx, ports.StatsRange{From: start, To: end, TaskTypes: q.TaskTypes})
	if err != nil {
		return nil, err
	}

	sortOwnerStats(rows, q.SortBy)
	return rows, nil
}

func (s *StatsService) Clusters(ctx context.Context) ([]ports.ClusterStats, error) {
	return s.repo.ClusterUtilization(ctx)
}

func (s *StatsService) TasksByCluster(ctx context.Context, cluster string) ([]ports.TaskTypeStats, error) {
	return s.repo.TasksByCluster(ctx, cluster)
}

func sortOwnerStats(rows []ports.OwnerStats, sortBy string) {
	switch sortBy {
	case ports.SortByPlanner:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalPlannerHour > rows[j].TotalPlannerHour })
	case ports.SortByActual:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalActualHour > rows[j].TotalActualHour })
	default:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	}
}
