package repository

import (
	"context"
	"errors"

	"tickr/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Omit("Workspace", "Tasks").Create(column).Error
}

func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepository) GetByWorkspaceID(ctx context.Context, workspaceID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Order("position").Find(&columns).Error
	return columns, err
}

// GetBoard loads the columns of a workspace with their tasks and subtasks,
// each level sorted by position.
func (r *ColumnRepository) GetBoard(ctx context.Context, workspaceID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Tasks.Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Tasks.Assignee").
		Where("workspace_id = ?", workspaceID).
		Order("position").
		Find(&columns).Error
	return columns, err
}

func (r *ColumnRepository) Count(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Column{}).
		Where("workspace_id = ?", workspaceID).
		Count(&count).Error
	return count, err
}

func (r *ColumnRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).Model(&model.Column{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrColumnNotFound
	}
	return nil
}

// DeleteCascade removes the column's subtasks, tasks and then the column.
func (r *ColumnRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	taskIDs := db.Model(&model.Task{}).Select("id").Where("column_id = ?", id)

	if err := db.Where("task_id IN (?)", taskIDs).Delete(&model.Subtask{}).Error; err != nil {
		return err
	}
	if err := db.Where("column_id = ?", id).Delete(&model.Task{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(&model.Column{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrColumnNotFound
	}
	return nil
}

// RewriteOrder stores each column's index in ids as its position.
func (r *ColumnRepository) RewriteOrder(ctx context.Context, ids []uuid.UUID) error {
	for i, id := range ids {
		if err := r.db.WithContext(ctx).Model(&model.Column{}).Where("id = ?", id).
			Update("position", i).Error; err != nil {
			return err
		}
	}
	return nil
}

// IDs returns the column ids of the workspace in position order.
func (r *ColumnRepository) IDs(ctx context.Context, workspaceID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Column{}).
		Where("workspace_id = ?", workspaceID).
		Order("position").
		Pluck("id", &ids).Error
	return ids, err
}
