package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create writes the parent row and all entries in one transaction, so a
// failure part-way leaves no orphaned submission behind.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (uint, error) {
	m := taskFromDomain(task)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return m.ID, nil
}

func (r *TaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]domain.Task, error) {
	q := r.db.WithContext(ctx).Preload("Entries").Order("date DESC, id DESC")
	if filter.AssignedTo != "" {
		q = q.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.Cluster != "" {
		q = q.Where("cluster = ?", filter.Cluster)
	}

	var models []taskModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, models[i].toDomain())
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*domain.Task, error) {
	var m taskModel
	if err := r.db.WithContext(ctx).Preload("Entries").First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	t := m.toDomain()
	return &t, nil
}

func (r *TaskRepository) FindEntry(ctx context.Context, entryID uint) (*domain.TaskEntry, *domain.Task, error) {
	var e entryModel
	if err := r.db.WithContext(ctx).First(&e, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrEntryNotFound
		}
		return nil, nil, fmt.Errorf("find entry: %w", err)
	}

	parent, err := r.FindByID(ctx, e.TaskID)
	if err != nil {
		return nil, nil, err
	}

	entry := e.toDomain()
	return &entry, parent, nil
}

func (r *TaskRepository) UpdateEntryActuals(ctx context.Context, entryID uint, actualHour float64, completed bool) error {
	res := r.db.WithContext(ctx).Model(&entryModel{}).
		Where("id = ?", entryID).
		Updates(map[string]any{"actual_hour": actualHour, "completed": completed})
	if res.Error != nil {
		return fmt.Errorf("update entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}
