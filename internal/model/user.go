package model

import (
	"time"
)

// User mirrors an identity-provider account. ID is the provider's opaque id.
type User struct {
	ID        string    `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"not null;default:''"`
	AvatarURL string
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
