package model

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DoneColumnName = "done"

type Column struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	WorkspaceID uuid.UUID `gorm:"not null;index"`
	Name        string    `gorm:"not null"`
	Order       int       `gorm:"column:position;not null"`

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
	Tasks     []Task    `gorm:"foreignKey:ColumnID"`
}

func (c *Column) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// IsDone reports whether tasks entering this column count as finished.
func (c *Column) IsDone() bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), DoneColumnName)
}
