package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// TaskFilter narrows task listings. Nil fields mean no filter.
type TaskFilter struct {
	ProjectID *uint
	UserID    *uint
}

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListWithin returns non-deleted tasks whose project id is in
// liveProjectIDs, optionally narrowed by filter. The project-id
// intersection is what hides tasks under a soft-deleted project even
// though the task rows themselves are untouched.
func (r *TaskRepository) ListWithin(ctx context.Context, filter TaskFilter, liveProjectIDs []uint) ([]model.Task, error) {
	if len(liveProjectIDs) == 0 {
		return []model.Task{}, nil
	}

	q := r.db.WithContext(ctx).
		Where("project_id IN ?", liveProjectIDs).
		Order("id")
	if filter.ProjectID != nil {
		q = q.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}

	tasks := []model.Task{}
	if err := q.Preload("Reminders").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateFields applies a column map and reloads the row.
func (r *TaskRepository) UpdateFields(ctx context.Context, task *model.Task, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(task).Updates(fields).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return r.db.WithContext(ctx).First(task, task.ID).Error
}

// SoftDelete marks the task deleted. Reminder cascade is the service's
// concern; this delete is the non-optional part and must fail loudly.
func (r *TaskRepository) SoftDelete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Task{}, id).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// MarkOverdue flips pending and in-progress tasks whose deadline has
// passed to the overdue status. Returns the number of rows touched.
func (r *TaskRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("deadline IS NOT NULL AND deadline < ?", now).
		Where("status IN ?", []model.TaskStatus{model.StatusPending, model.StatusInProgress}).
		Update("status", model.StatusOverdue)
	if res.Error != nil {
		return 0, fmt.Errorf("mark overdue: %w", res.Error)
	}
	return res.RowsAffected, nil
}
