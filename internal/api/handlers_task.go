package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/pkg/apierrors"
)

type TaskHandler struct {
	taskSvc *service.TaskService
}

func NewTaskHandler(taskSvc *service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

func (h *TaskHandler) Create(c *gin.Context) {
	lang := GetLang(c)

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang))
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang))
		return
	}

	input := service.TaskInput{
		ProjectID: req.ProjectID,
		UserID:    user.ID,
		Title:     req.Title,
		Priority:  model.TaskPriority(req.Priority),
		Status:    model.TaskStatus(req.Status),
	}
	if req.UserID != nil {
		input.UserID = *req.UserID
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Deadline != nil {
		deadline, err := parseTimestamp(*req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang))
			return
		}
		input.Deadline = &deadline
	}
	for _, raw := range req.Reminders {
		remindAt, err := parseTimestamp(raw)
		if err != nil {
			// Reminders are best-effort secondary writes; a bad value is
			// dropped, not a reason to reject the task.
			zap.L().Warn("dropping unparseable reminder", zap.String("value", raw))
			continue
		}
		input.Reminders = append(input.Reminders, remindAt)
	}

	task, err := h.taskSvc.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// List returns live tasks whose parent project is live, optionally
// filtered by project or user.
func (h *TaskHandler) List(c *gin.Context) {
	lang := GetLang(c)

	var filter repository.TaskFilter
	if raw := c.Query("project_id"); raw != "" {
		id, err := parseQueryID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang))
			return
		}
		filter.ProjectID = &id
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := parseQueryID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang))
			return
		}
		filter.UserID = &id
	}

	tasks, err := h.taskSvc.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Update(c *gin.Context) {
	lang := GetLang(c)

	taskID, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang))
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang))
		return
	}

	patch := service.TaskPatch{
		ProjectID:   req.ProjectID,
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Deadline != nil {
		deadline, err := parseTimestamp(*req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang))
			return
		}
		patch.Deadline = &deadline
		patch.DeadlineSet = true
	}
	if req.Priority != nil {
		priority := model.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		patch.Status = &status
	}

	task, err := h.taskSvc.Update(c.Request.Context(), taskID, patch)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Destroy soft-deletes a task and, best-effort, its reminders.
func (h *TaskHandler) Destroy(c *gin.Context) {
	lang := GetLang(c)

	taskID, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang))
		return
	}

	if err := h.taskSvc.Destroy(c.Request.Context(), taskID); err != nil {
		respondServiceError(c, err, apierrors.MsgFailDeleteTask)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// Share returns task plus project when the parent project is public.
func (h *TaskHandler) Share(c *gin.Context) {
	lang := GetLang(c)

	taskID, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang))
		return
	}

	share, err := h.taskSvc.Share(c.Request.Context(), taskID)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailShare)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task shared successfully",
		"task":    share.Task,
		"project": share.Project,
	})
}

func parseQueryID(raw string) (uint, error) {
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(value), nil
}
