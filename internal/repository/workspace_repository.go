package repository

import (
	"context"
	"errors"

	"tickr/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// WorkspaceWithRole is a workspace as seen by one user.
type WorkspaceWithRole struct {
	model.Workspace
	Role model.Role
}

func (r *WorkspaceRepository) Create(ctx context.Context, ws *model.Workspace) error {
	return r.db.WithContext(ctx).Create(ws).Error
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error) {
	var ws model.Workspace
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ws).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}
	return &ws, nil
}

// ListForUser returns every workspace the user owns or belongs to, personal
// workspace first, then by creation time.
func (r *WorkspaceRepository) ListForUser(ctx context.Context, userID string) ([]WorkspaceWithRole, error) {
	var workspaces []model.Workspace
	err := r.db.WithContext(ctx).
		Where("owner_id = ? OR id IN (?)", userID,
			r.db.Model(&model.WorkspaceMember{}).Select("workspace_id").Where("user_id = ?", userID)).
		Order("is_personal DESC").
		Order("created_at").
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}

	var members []model.WorkspaceMember
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&members).Error; err != nil {
		return nil, err
	}
	roles := make(map[uuid.UUID]model.Role, len(members))
	for _, m := range members {
		roles[m.WorkspaceID] = m.Role
	}

	result := make([]WorkspaceWithRole, len(workspaces))
	for i, ws := range workspaces {
		role := roles[ws.ID]
		if ws.OwnerID == userID {
			role = model.RoleAdmin
		}
		result[i] = WorkspaceWithRole{Workspace: ws, Role: role}
	}
	return result, nil
}

// CountOwned counts the non-personal workspaces owned by the user.
func (r *WorkspaceRepository) CountOwned(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Workspace{}).
		Where("owner_id = ? AND is_personal = ?", ownerID, false).
		Count(&count).Error
	return count, err
}

func (r *WorkspaceRepository) FindPersonal(ctx context.Context, ownerID string) (*model.Workspace, error) {
	var ws model.Workspace
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_personal = ?", ownerID, true).
		First(&ws).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *WorkspaceRepository) ListOwned(ctx context.Context, ownerID string) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&workspaces).Error
	return workspaces, err
}

// UpdateDetails writes name and description only.
func (r *WorkspaceRepository) UpdateDetails(ctx context.Context, ws *model.Workspace) error {
	return r.db.WithContext(ctx).Model(&model.Workspace{}).
		Where("id = ?", ws.ID).
		Updates(map[string]interface{}{
			"name":        ws.Name,
			"description": ws.Description,
		}).Error
}

// DeleteCascade removes the workspace and everything it contains. Run it
// inside a transaction.
func (r *WorkspaceRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)

	columnIDs := db.Model(&model.Column{}).Select("id").Where("workspace_id = ?", id)
	taskIDs := db.Model(&model.Task{}).Select("id").Where("column_id IN (?)", columnIDs)

	if err := db.Where("task_id IN (?)", taskIDs).Delete(&model.Subtask{}).Error; err != nil {
		return err
	}
	if err := db.Where("column_id IN (?)", columnIDs).Delete(&model.Task{}).Error; err != nil {
		return err
	}
	if err := db.Where("workspace_id = ?", id).Delete(&model.Column{}).Error; err != nil {
		return err
	}
	if err := db.Where("workspace_id = ?", id).Delete(&model.WorkspaceInvite{}).Error; err != nil {
		return err
	}
	if err := db.Where("workspace_id = ?", id).Delete(&model.WorkspaceMember{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Workspace{}).Error
}
