package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

// StatsRepository runs the grouped-sum dashboard queries directly in SQL.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) OwnerTotals(ctx context.Context, rng ports.StatsRange) ([]ports.OwnerStats, error) {
	var rows []ports.OwnerStats
	q := r.ownerQuery(ctx, rng).
		Select("tasks.name AS name",
			"SUM(task_entries.planner_hour) AS total_planner_hour",
			"SUM(task_entries.actual_hour) AS total_actual_hour")
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("owner totals: %w", err)
	}
	return rows, nil
}

// OwnerTotalsWithRole joins each owner's role from the users table.
func (r *StatsRepository) OwnerTotalsWithRole(ctx context.Context, rng ports.StatsRange) ([]ports.OwnerStats, error) {
	var rows []ports.OwnerStats
	q := r.ownerQuery(ctx, rng).
		Joins("LEFT JOIN users ON users.email = tasks.assigned_to").
		Select("tasks.name AS name",
			"users.role AS role",
			"SUM(task_entries.planner_hour) AS total_planner_hour",
			"SUM(task_entries.actual_hour) AS total_actual_hour")
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("owner totals with role: %w", err)
	}
	return rows, nil
}

func (r *StatsRepository) ClusterUtilization(ctx context.Context) ([]ports.ClusterStats, error) {
	var rows []ports.ClusterStats
	err := r.db.WithContext(ctx).Model(&taskModel{}).
		Joins("JOIN task_entries ON task_entries.task_id = tasks.id").
		Select("tasks.cluster AS cluster", "SUM(task_entries.planner_hour) AS total_planner_hour").
		Group("tasks.cluster").
		Order("total_planner_hour DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("cluster utilization: %w", err)
	}
	return rows, nil
}

func (r *StatsRepository) TasksByCluster(ctx context.Context, cluster string) ([]ports.TaskTypeStats, error) {
	var rows []ports.TaskTypeStats
	err := r.db.WithContext(ctx).Model(&taskModel{}).
		Joins("JOIN task_entries ON task_entries.task_id = tasks.id").
		Where("tasks.cluster = ?", cluster).
		Select("task_entries.task_type AS task_type", "SUM(task_entries.planner_hour) AS total_planner_hour").
		Group("task_entries.task_type").
		Order("total_planner_hour DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("tasks by cluster: %w", err)
	}
	return rows, nil
}

func (r *StatsRepository) ownerQuery(ctx context.Context, rng ports.StatsRange) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&taskModel{}).
		Joins("JOIN task_entries ON task_entries.task_id = tasks.id").
		Where("tasks.date >= ? AND tasks.date < ?", rng.From, rng.To).
		Group("tasks.name")
	if len(rng.TaskTypes) > 0 {
		q = q.Where("task_entries.task_type IN ?", rng.TaskTypes)
	}
	return q
}
