package model

import (
	"time"

	"gorm.io/gorm"
)

// TaskPriority and TaskStatus are closed enumerations; values outside
// the constants below are rejected before a task reaches the store.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusOverdue    TaskStatus = "overdue"
)

// ValidPriority reports whether p is one of the closed priority values.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the closed status values.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

// Task belongs to exactly one project and one user.
type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index" json:"project_id"`
	UserID      uint           `gorm:"index" json:"user_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	Priority    TaskPriority   `json:"priority"`
	Status      TaskStatus     `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Reminders   []TaskReminder `gorm:"foreignKey:TaskID" json:"reminders,omitempty"`
}
