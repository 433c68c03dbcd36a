package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// ReminderRepository handles task reminders and the notifications log.
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *model.TaskReminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, id uint) (*model.TaskReminder, error) {
	var reminder model.TaskReminder
	if err := r.db.WithContext(ctx).First(&reminder, id).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

// ListByTask returns the non-deleted reminders of a task.
func (r *ReminderRepository) ListByTask(ctx context.Context, taskID uint) ([]model.TaskReminder, error) {
	reminders := []model.TaskReminder{}
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("remind_at").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// SoftDeleteByTask marks every reminder of the task deleted.
func (r *ReminderRepository) SoftDeleteByTask(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&model.TaskReminder{}).Error; err != nil {
		return fmt.Errorf("delete reminders: %w", err)
	}
	return nil
}

// ListDue returns unsent, non-deleted reminders whose remind_at has
// passed. This only models when a reminder should fire; delivery belongs
// to an external collaborator.
func (r *ReminderRepository) ListDue(ctx context.Context, now time.Time) ([]model.TaskReminder, error) {
	reminders := []model.TaskReminder{}
	if err := r.db.WithContext(ctx).
		Where("is_sent = ? AND remind_at <= ?", false, now).
		Order("remind_at").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// MarkSent flips IsSent once and appends a notifications-log row in one
// transaction. An already-sent reminder is left untouched.
func (r *ReminderRepository) MarkSent(ctx context.Context, reminder *model.TaskReminder, userID uint, sentAt time.Time, status, message string) error {
	if reminder.IsSent {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(reminder).
			Where("is_sent = ?", false).
			Updates(map[string]interface{}{"is_sent": true, "sent_at": sentAt})
		if res.Error != nil {
			return fmt.Errorf("mark reminder sent: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race with another sender; keep the log append out.
			return nil
		}
		entry := model.NotificationsLog{
			UserID:     userID,
			TaskID:     reminder.TaskID,
			ReminderID: reminder.ID,
			Status:     status,
			Message:    message,
			SentAt:     &sentAt,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("append notifications log: %w", err)
		}
		return nil
	})
}

// NotificationsByTask returns the delivery audit trail of a task.
func (r *ReminderRepository) NotificationsByTask(ctx context.Context, taskID uint) ([]model.NotificationsLog, error) {
	entries := []model.NotificationsLog{}
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
