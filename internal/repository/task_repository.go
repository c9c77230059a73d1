package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tickr/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database. Subtasks are stored separately.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit("Column", "Assignee", "Subtasks").Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetDetailed retrieves a task with its ordered subtasks and assignee
func (r *TaskRepository) GetDetailed(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Assignee").
		First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByColumnID retrieves all tasks in a specific column
func (r *TaskRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("column_id = ?", columnID).
		Order("position").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// IDs returns the task ids of a column in position order
func (r *TaskRepository) IDs(ctx context.Context, columnID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("column_id = ?", columnID).
		Order("position").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *TaskRepository) Count(ctx context.Context, columnID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("column_id = ?", columnID).Count(&count).Error
	return count, err
}

// UpdateFields writes the editable fields of a task
func (r *TaskRepository) UpdateFields(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"subtitle":    task.Subtitle,
			"details":     task.Details,
			"priority":    task.Priority,
			"due_date":    task.DueDate,
			"assignee_id": task.AssigneeID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task and its subtasks
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("task_id = ?", id).Delete(&model.Subtask{}).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// SetColumn re-parents a task
func (r *TaskRepository) SetColumn(ctx context.Context, taskID, columnID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("column_id", columnID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// RewriteOrder stores each task's index in ids as its position
func (r *TaskRepository) RewriteOrder(ctx context.Context, ids []uuid.UUID) error {
	for i, id := range ids {
		if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).
			Update("position", i).Error; err != nil {
			return err
		}
	}
	return nil
}

// ClearAssignee unassigns the user from every task of the workspace
func (r *TaskRepository) ClearAssignee(ctx context.Context, workspaceID uuid.UUID, userID string) error {
	columnIDs := r.db.Model(&model.Column{}).Select("id").Where("workspace_id = ?", workspaceID)
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assignee_id = ? AND column_id IN (?)", userID, columnIDs).
		Update("assignee_id", nil).Error
}

// ClearAssigneeAll unassigns the user everywhere.
func (r *TaskRepository) ClearAssigneeAll(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assignee_id = ?", userID).
		Update("assignee_id", nil).Error
}
