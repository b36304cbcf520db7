package ports

import (
	"context"
	"time"
)

// Sort keys accepted by the weekly/monthly rollups.
const (
	SortByName    = "name"
	SortByPlanner = "planner"
	SortByActual  = "actual"
)

// StatsQuery parameterises the weekly rollup. Zero Start/End default to the
// trailing seven days.
type StatsQuery struct {
	Start     time.Time
	End       time.Time
	TaskTypes []string
	SortBy    string
}

// StatsService exposes the read-only dashboard rollups. Every call re-queries
// the store; nothing is cached.
type StatsService interface {
	Weekly(ctx context.Context, q StatsQuery) ([]OwnerStats, error)
	// Monthly covers the current calendar month and includes each owner's role.
	Monthly(ctx context.Context, q StatsQuery) ([]OwnerStats, error)
	// Clusters returns total planned hours per cluster, descending.
	Clusters(ctx context.Context) ([]ClusterStats, error)
	// TasksByCluster returns planned hours per task type within one cluster,
	// descending.
	TasksByCluster(ctx context.Context, cluster string) ([]TaskTypeStats, error)
}
