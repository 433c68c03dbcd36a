package model

import (
	"time"

	"gorm.io/gorm"
)

// TaskReminder is a point in time at which a notification for its task
// becomes due. IsSent flips false to true exactly once and never back;
// SentAt is set at the same transition.
type TaskReminder struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TaskID    uint           `gorm:"index" json:"task_id"`
	RemindAt  time.Time      `json:"remind_at"`
	IsSent    bool           `gorm:"default:false" json:"is_sent"`
	SentAt    *time.Time     `json:"sent_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
