package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/taskpulse/daily-tracker/internal/core/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := userFromDomain(user)
	m.ID = 0

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var models []userModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(models))
	for i := range models {
		users = append(users, *models[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role string) error {
	return r.updateByID(ctx, id, map[string]any{"role": role})
}

func (r *UserRepository) UpdateClusterLead(ctx context.Context, id uint, clusterLead string) error {
	return r.updateByID(ctx, id, map[string]any{"cluster_lead": clusterLead})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ToggleActive flips IsDeleted and returns the new value.
func (r *UserRepository) ToggleActive(ctx context.Context, email string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m userModel
		if err := tx.Where("email = ?", email).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		m.IsDeleted = !m.IsDeleted
		deleted = m.IsDeleted
		return tx.Model(&userModel{}).Where("id = ?", m.ID).Update("is_deleted", m.IsDeleted).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, err
		}
		return false, fmt.Errorf("toggle user: %w", err)
	}
	return deleted, nil
}

// FindMissingSubmitters returns active Team Members with no task dated day.
func (r *UserRepository) FindMissingSubmitters(ctx context.Context, day time.Time) ([]domain.User, error) {
	day = domain.DateOnly(day)

	var models []userModel
	err := r.db.WithContext(ctx).
		Where("is_deleted = ? AND role = ?", false, domain.RoleTeamMember).
		Where("email NOT IN (?)",
			r.db.Model(&taskModel{}).Select("assigned_to").Where("date = ?", day)).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find missing submitters: %w", err)
	}

	users := make([]domain.User, 0, len(models))
	for i := range models {
		users = append(users, *models[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) updateByID(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// isUniqueViolation matches SQLite's constraint error text; gorm does not
// expose a typed error for it.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
