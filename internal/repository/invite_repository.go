package repository

import (
	"context"
	"errors"
	"strings"

	"tickr/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, invite *model.WorkspaceInvite) error {
	invite.Email = strings.ToLower(strings.TrimSpace(invite.Email))
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *InviteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.WorkspaceInvite, error) {
	var invite model.WorkspaceInvite
	err := r.db.WithContext(ctx).Preload("Workspace").Where("id = ?", id).First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInviteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

// FindPending returns the pending invite for email in the workspace, or nil.
func (r *InviteRepository) FindPending(ctx context.Context, workspaceID uuid.UUID, email string) (*model.WorkspaceInvite, error) {
	var invite model.WorkspaceInvite
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND email = ? AND status = ?", workspaceID, strings.ToLower(email), model.InvitePending).
		First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *InviteRepository) ListPendingByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]model.WorkspaceInvite, error) {
	var invites []model.WorkspaceInvite
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND status = ?", workspaceID, model.InvitePending).
		Order("created_at").
		Find(&invites).Error
	return invites, err
}

// ListPendingByEmail matches the address case-insensitively.
func (r *InviteRepository) ListPendingByEmail(ctx context.Context, email string) ([]model.WorkspaceInvite, error) {
	var invites []model.WorkspaceInvite
	err := r.db.WithContext(ctx).
		Preload("Workspace").
		Where("LOWER(email) = ? AND status = ?", strings.ToLower(strings.TrimSpace(email)), model.InvitePending).
		Order("created_at DESC").
		Find(&invites).Error
	return invites, err
}

func (r *InviteRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	return r.db.WithContext(ctx).Model(&model.WorkspaceInvite{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *InviteRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.InviteStatus) error {
	return r.db.WithContext(ctx).Model(&model.WorkspaceInvite{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *InviteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.WorkspaceInvite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInviteNotFound
	}
	return nil
}
