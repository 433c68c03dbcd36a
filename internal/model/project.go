package model

import (
	"time"

	"gorm.io/gorm"
)

// Project is a titled container of tasks owned by one user. Deleting a
// project only marks the row; its tasks stay untouched and become
// unreachable through the task listing filter.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index" json:"user_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	IsPrivate   bool           `json:"is_private"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Tasks       []Task         `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
