package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// TaskInput represents data required to create a task. Reminders is an
// optional batch of fire times persisted alongside the task.
type TaskInput struct {
	ProjectID   uint
	UserID      uint
	Title       string
	Description string
	Deadline    *time.Time
	Priority    model.TaskPriority
	Status      model.TaskStatus
	Reminders   []time.Time
}

// TaskPatch is a partial update; nil fields keep current values. The
// Set flags distinguish "clear the value" from "leave it alone" for the
// nullable columns.
type TaskPatch struct {
	ProjectID   *uint
	UserID      *uint
	Title       *string
	Description *string
	Deadline    *time.Time
	DeadlineSet bool
	Priority    *model.TaskPriority
	Status      *model.TaskStatus
}

// TaskShare is the payload returned when a task is shared.
type TaskShare struct {
	Task    model.Task    `json:"task"`
	Project model.Project `json:"project"`
}

// TaskService wraps task business logic, including the reminder batch
// and the soft-delete cascade.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	reminderRepo *repository.ReminderRepository
	projectRepo  *repository.ProjectRepository
	userRepo     *repository.UserRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, reminderRepo *repository.ReminderRepository, projectRepo *repository.ProjectRepository, userRepo *repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		reminderRepo: reminderRepo,
		projectRepo:  projectRepo,
		userRepo:     userRepo,
	}
}

// Create persists a task and its reminder batch. Both references must
// resolve to live rows. Reminder inserts are best-effort secondary
// writes: a failure is logged and swallowed, it never rolls back the
// already-created task.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !model.ValidPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}
	if !model.ValidStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadProjectRef
		}
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadUserRef
		}
		return nil, err
	}

	task := model.Task{
		ProjectID:   input.ProjectID,
		UserID:      input.UserID,
		Title:       title,
		Description: input.Description,
		Deadline:    input.Deadline,
		Priority:    input.Priority,
		Status:      input.Status,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}

	for _, remindAt := range input.Reminders {
		reminder := model.TaskReminder{TaskID: task.ID, RemindAt: remindAt, IsSent: false}
		if err := s.reminderRepo.Create(ctx, &reminder); err != nil {
			zap.L().Warn("reminder insert failed, keeping task",
				zap.Uint("task_id", task.ID),
				zap.Time("remind_at", remindAt),
				zap.Error(err))
			continue
		}
		task.Reminders = append(task.Reminders, reminder)
	}

	return &task, nil
}

func (s *TaskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// List returns one ordered slice of tasks: rows that are themselves
// live AND whose parent project is live. The set of non-deleted project
// ids is computed first, then intersected.
func (s *TaskService) List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	liveProjectIDs, err := s.projectRepo.LiveIDs(ctx)
	if err != nil {
		return nil, err
	}
	return s.taskRepo.ListWithin(ctx, filter, liveProjectIDs)
}

// Update applies the recognized patch fields; unspecified fields retain
// their current values. Changed references must resolve.
func (s *TaskService) Update(ctx context.Context, taskID uint, patch TaskPatch) (*model.Task, error) {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(ctx, *patch.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBadProjectRef
			}
			return nil, err
		}
		fields["project_id"] = *patch.ProjectID
	}
	if patch.UserID != nil {
		if _, err := s.userRepo.FindByID(ctx, *patch.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBadUserRef
			}
			return nil, err
		}
		fields["user_id"] = *patch.UserID
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		fields["title"] = title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.DeadlineSet {
		fields["deadline"] = patch.Deadline
	}
	if patch.Priority != nil {
		if !model.ValidPriority(*patch.Priority) {
			return nil, ErrInvalidPriority
		}
		fields["priority"] = *patch.Priority
	}
	if patch.Status != nil {
		if !model.ValidStatus(*patch.Status) {
			return nil, ErrInvalidStatus
		}
		fields["status"] = *patch.Status
	}
	if len(fields) == 0 {
		return task, nil
	}

	if err := s.taskRepo.UpdateFields(ctx, task, fields); err != nil {
		return nil, err
	}
	return task, nil
}

// Destroy soft-deletes the task's reminders first, then the task. The
// reminder sweep is best-effort; the task delete is non-optional and
// fails loudly.
func (s *TaskService) Destroy(ctx context.Context, taskID uint) error {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.reminderRepo.SoftDeleteByTask(ctx, task.ID); err != nil {
		zap.L().Warn("reminder cascade failed, deleting task anyway",
			zap.Uint("task_id", task.ID),
			zap.Error(err))
	}

	return s.taskRepo.SoftDelete(ctx, task.ID)
}

// Share returns the task together with its project when the project is
// public. A task under a private project can never be shared.
func (s *TaskService) Share(ctx context.Context, taskID uint) (*TaskShare, error) {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if project.IsPrivate {
		return nil, ErrProjectNotPublic
	}

	reminders, err := s.reminderRepo.ListByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	task.Reminders = reminders

	return &TaskShare{Task: *task, Project: *project}, nil
}

// MarkOverdue flips live tasks whose deadline has passed into the
// overdue status.
func (s *TaskService) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	return s.taskRepo.MarkOverdue(ctx, now)
}
