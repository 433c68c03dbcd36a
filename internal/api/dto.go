package api

import (
	"fmt"
	"time"
)

type RegisterRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	PhoneNumber string `json:"phone_number" binding:"required,max=32"`
	Password    string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type ProfileUpdateRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type CreateProjectRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	IsPrivate   bool    `json:"is_private"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	IsPrivate   *bool   `json:"is_private"`
	// user_id and id are intentionally absent: ownership is immune to
	// patch injection.
}

type CreateTaskRequest struct {
	ProjectID   uint     `json:"project_id" binding:"required,gt=0"`
	UserID      *uint    `json:"user_id" binding:"omitempty,gt=0"`
	Title       string   `json:"title" binding:"required,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=65535"`
	Deadline    *string  `json:"deadline"`
	Priority    string   `json:"priority" binding:"required,oneof=low medium high"`
	Status      string   `json:"status" binding:"required,oneof=pending in_progress completed overdue"`
	Reminders   []string `json:"reminders"`
}

type UpdateTaskRequest struct {
	ProjectID   *uint   `json:"project_id" binding:"omitempty,gt=0"`
	UserID      *uint   `json:"user_id" binding:"omitempty,gt=0"`
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Deadline    *string `json:"deadline"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in_progress completed overdue"`
}

// timeLayouts are the accepted timestamp shapes for deadlines and
// reminder times, most specific first.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}
