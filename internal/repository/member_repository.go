package repository

import (
	"context"
	"errors"

	"tickr/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, member *model.WorkspaceMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// Get returns the membership row of userID in workspaceID, or nil.
func (r *MemberRepository) Get(ctx context.Context, workspaceID uuid.UUID, userID string) (*model.WorkspaceMember, error) {
	var member model.WorkspaceMember
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// List returns the members of a workspace with their user rows, oldest first.
func (r *MemberRepository) List(ctx context.Context, workspaceID uuid.UUID) ([]model.WorkspaceMember, error) {
	var members []model.WorkspaceMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("workspace_id = ?", workspaceID).
		Order("joined_at").
		Find(&members).Error
	return members, err
}

func (r *MemberRepository) CountByRole(ctx context.Context, workspaceID uuid.UUID) (total int64, admins int64, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Model(&model.WorkspaceMember{}).
		Where("workspace_id = ?", workspaceID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = db.Model(&model.WorkspaceMember{}).
		Where("workspace_id = ? AND role = ?", workspaceID, model.RoleAdmin).
		Count(&admins).Error; err != nil {
		return 0, 0, err
	}
	return total, admins, nil
}

func (r *MemberRepository) UpdateRole(ctx context.Context, workspaceID uuid.UUID, userID string, role model.Role) error {
	result := r.db.WithContext(ctx).Model(&model.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, workspaceID uuid.UUID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&model.WorkspaceMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// DeleteByUser drops every membership of the user.
func (r *MemberRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.WorkspaceMember{}).Error
}
