package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subtask struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	TaskID    uuid.UUID `gorm:"not null;index"`
	Title     string    `gorm:"not null"`
	Completed bool      `gorm:"not null;default:false"`
	Order     int       `gorm:"column:position;not null"`

	Task Task `gorm:"foreignKey:TaskID"`
}

func (s *Subtask) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
