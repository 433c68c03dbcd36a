package service

import "errors"

// Typed domain errors. Handlers translate these into HTTP codes; every
// other persistence failure propagates unmodified.
var (
	ErrTitleRequired      = errors.New("title is required")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrReminderNotFound   = errors.New("reminder not found")
	ErrBadProjectRef      = errors.New("project reference does not exist")
	ErrBadUserRef         = errors.New("user reference does not exist")
	ErrProjectNotPublic   = errors.New("project is not public")
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
