package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkspaceMember связывает пользователя с рабочим пространством
type WorkspaceMember struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	WorkspaceID uuid.UUID `gorm:"not null;uniqueIndex:idx_member_workspace_user"`
	UserID      string    `gorm:"not null;uniqueIndex:idx_member_workspace_user;index"`
	Role        Role      `gorm:"not null"`
	JoinedAt    time.Time `gorm:"autoCreateTime"`

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
	User      User      `gorm:"foreignKey:UserID"`
}

func (m *WorkspaceMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
