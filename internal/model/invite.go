package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InviteStatus string

const (
	InvitePending  InviteStatus = "PENDING"
	InviteAccepted InviteStatus = "ACCEPTED"
	InviteDeclined InviteStatus = "DECLINED"
)

// WorkspaceInvite is an offer of membership addressed to an email.
type WorkspaceInvite struct {
	ID          uuid.UUID    `gorm:"primaryKey"`
	WorkspaceID uuid.UUID    `gorm:"not null;index"`
	Email       string       `gorm:"not null;index"`
	Role        Role         `gorm:"not null"`
	Status      InviteStatus `gorm:"not null;default:PENDING"`
	InvitedByID string       `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
}

func (i *WorkspaceInvite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
