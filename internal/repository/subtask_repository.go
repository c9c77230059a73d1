package repository

import (
	"context"
	"errors"

	"tickr/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubtaskRepository struct {
	db *gorm.DB
}

func NewSubtaskRepository(db *gorm.DB) *SubtaskRepository {
	return &SubtaskRepository{db: db}
}

func (r *SubtaskRepository) Create(ctx context.Context, subtask *model.Subtask) error {
	return r.db.WithContext(ctx).Omit("Task").Create(subtask).Error
}

func (r *SubtaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subtask, error) {
	var subtask model.Subtask
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&subtask).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubtaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subtask, nil
}

func (r *SubtaskRepository) Count(ctx context.Context, taskID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subtask{}).Where("task_id = ?", taskID).Count(&count).Error
	return count, err
}

func (r *SubtaskRepository) IDs(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Subtask{}).
		Where("task_id = ?", taskID).
		Order("position").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *SubtaskRepository) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	result := r.db.WithContext(ctx).Model(&model.Subtask{}).
		Where("id = ?", id).
		Update("completed", completed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubtaskNotFound
	}
	return nil
}

// CompleteAll marks every subtask of the task as completed.
func (r *SubtaskRepository) CompleteAll(ctx context.Context, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Subtask{}).
		Where("task_id = ?", taskID).
		Update("completed", true).Error
}

func (r *SubtaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Subtask{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubtaskNotFound
	}
	return nil
}

func (r *SubtaskRepository) RewriteOrder(ctx context.Context, ids []uuid.UUID) error {
	for i, id := range ids {
		if err := r.db.WithContext(ctx).Model(&model.Subtask{}).Where("id = ?", id).
			Update("position", i).Error; err != nil {
			return err
		}
	}
	return nil
}
