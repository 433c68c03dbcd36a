package model

import "time"

// User is an account identified by phone number. It owns projects and
// tasks directly.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	PhoneNumber  string    `gorm:"uniqueIndex" json:"phone_number"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
