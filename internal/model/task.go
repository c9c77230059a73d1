package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	}
	return "", false
}

type Task struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	ColumnID    uuid.UUID `gorm:"not null;index"`
	Title       string    `gorm:"not null"`
	Subtitle    *string
	Details     *string
	Priority    Priority `gorm:"not null;default:MEDIUM"`
	Order       int      `gorm:"column:position;not null"`
	DueDate     *time.Time
	AssigneeID  *string `gorm:"index"`
	CreatedByID string  `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Column   Column    `gorm:"foreignKey:ColumnID"`
	Assignee *User     `gorm:"foreignKey:AssigneeID"`
	Subtasks []Subtask `gorm:"foreignKey:TaskID"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return nil
}
