package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskboard/internal/service"
	"taskboard/pkg/apierrors"
)

type ProjectHandler struct {
	projectSvc *service.ProjectService
}

func NewProjectHandler(projectSvc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	lang := GetLang(c)

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang))
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang))
		return
	}

	input := service.ProjectInput{Title: req.Title, IsPrivate: req.IsPrivate}
	if req.Description != nil {
		input.Description = *req.Description
	}

	project, err := h.projectSvc.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailCreateProject)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// List returns all non-deleted projects, optionally filtered by owner.
func (h *ProjectHandler) List(c *gin.Context) {
	lang := GetLang(c)

	var userID *uint
	if raw := c.Query("user_id"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || value == 0 {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang))
			return
		}
		id := uint(value)
		userID = &id
	}

	projects, err := h.projectSvc.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailListProjects)
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Copy(c *gin.Context) {
	lang := GetLang(c)

	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang))
		return
	}

	projectID, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang))
		return
	}

	copy, err := h.projectSvc.Copy(c.Request.Context(), projectID, user.ID)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailCopyProject)
		return
	}

	c.JSON(http.StatusCreated, copy)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	lang := GetLang(c)

	projectID, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang))
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang))
		return
	}

	project, err := h.projectSvc.Update(c.Request.Context(), projectID, service.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateProject)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Share returns the public link when the project is public.
func (h *ProjectHandler) Share(c *gin.Context) {
	lang := GetLang(c)

	projectID, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang))
		return
	}

	url, err := h.projectSvc.ShareLink(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailShare)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project shared successfully", "url": url})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	lang := GetLang(c)

	projectID, err := paramID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang))
		return
	}

	if err := h.projectSvc.Delete(c.Request.Context(), projectID); err != nil {
		respondServiceError(c, err, apierrors.MsgFailDeleteProject)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func paramID(c *gin.Context) (uint, error) {
	value, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || value == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(value), nil
}
