package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ReminderService models when reminders should fire and records the
// outcome of delivery attempts. Delivery itself is an external
// collaborator; it reports back through MarkSent.
type ReminderService struct {
	reminderRepo *repository.ReminderRepository
	taskRepo     *repository.TaskRepository
}

func NewReminderService(reminderRepo *repository.ReminderRepository, taskRepo *repository.TaskRepository) *ReminderService {
	return &ReminderService{reminderRepo: reminderRepo, taskRepo: taskRepo}
}

// Due returns the unsent reminders whose fire time has passed.
func (s *ReminderService) Due(ctx context.Context, now time.Time) ([]model.TaskReminder, error) {
	return s.reminderRepo.ListDue(ctx, now)
}

// ListByTask returns the live reminders of a task.
func (s *ReminderService) ListByTask(ctx context.Context, taskID uint) ([]model.TaskReminder, error) {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return s.reminderRepo.ListByTask(ctx, taskID)
}

// MarkSent records a delivery attempt: flips the reminder exactly once
// and appends the notifications-log row. Calling it twice for the same
// reminder is a no-op.
func (s *ReminderService) MarkSent(ctx context.Context, reminderID uint, sentAt time.Time, status, message string) error {
	reminder, err := s.reminderRepo.FindByID(ctx, reminderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReminderNotFound
		}
		return err
	}

	task, err := s.taskRepo.FindByID(ctx, reminder.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	return s.reminderRepo.MarkSent(ctx, reminder, task.UserID, sentAt, status, message)
}

// NotificationsByTask returns the notification audit trail of a task.
func (s *ReminderService) NotificationsByTask(ctx context.Context, taskID uint) ([]model.NotificationsLog, error) {
	return s.reminderRepo.NotificationsByTask(ctx, taskID)
}
