package model

import "time"

// ProjectCopyLog is an append-only audit row written in the same
// transaction as every project copy.
type ProjectCopyLog struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	OriginalProjectID uint      `gorm:"index" json:"original_project_id"`
	CopiedByUserID    uint      `gorm:"index" json:"copied_by_user_id"`
	NewProjectID      uint      `json:"new_project_id"`
	CopiedAt          time.Time `json:"copied_at"`
}

// TableName keeps the singular table name the schema uses.
func (ProjectCopyLog) TableName() string { return "project_copy_log" }

// NotificationsLog records one notification delivery attempt. Rows are
// never updated after creation.
type NotificationsLog struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"index" json:"user_id"`
	TaskID     uint       `gorm:"index" json:"task_id"`
	ReminderID uint       `json:"reminder_id"`
	Status     string     `json:"status"`
	Message    string     `json:"message,omitempty"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
}

func (NotificationsLog) TableName() string { return "notifications_log" }
