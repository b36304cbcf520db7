package ports

import (
	"context"
	"time"
)

// OwnerStats is one grouped row of the weekly/monthly rollups.
type OwnerStats struct {
	Name             string  `json:"name"`
	Role             string  `json:"role,omitempty"`
	TotalPlannerHour float64 `json:"totalPlannerHour"`
	TotalActualHour  float64 `json:"totalActualHour"`
}

// ClusterStats is one row of the per-cluster utilization rollup.
type ClusterStats struct {
	Cluster          string  `json:"cluster"`
	TotalPlannerHour float64 `json:"totalPlannerHour"`
}

// TaskTypeStats is one row of the within-cluster drill-down.
type TaskTypeStats struct {
	TaskType         string  `json:"taskType"`
	TotalPlannerHour float64 `json:"totalPlannerHour"`
}

// StatsRange bounds an aggregation query. TaskTypes, when non-empty,
// restricts the rollup to those categories.
type StatsRange struct {
	From      time.Time
	To        time.Time
	TaskTypes []string
}

// StatsRepository runs the grouped-sum queries behind the dashboards. All
// reads are idempotent; nothing is cached between calls.
type StatsRepository interface {
	OwnerTotals(ctx context.Context, r StatsRange) ([]OwnerStats, error)
	// OwnerTotalsWithRole is OwnerTotals joined with each owner's role.
	OwnerTotalsWithRole(ctx context.Context, r StatsRange) ([]OwnerStats, error)
	ClusterUtilization(ctx context.Context) ([]ClusterStats, error)
	TasksByCluster(ctx context.Context, cluster string) ([]TaskTypeStats, error)
}
