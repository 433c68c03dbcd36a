package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ProjectInput carries the fields a caller may set at creation.
type ProjectInput struct {
	Title       string
	Description string
	IsPrivate   bool
}

// ProjectPatch is a partial update. Nil fields keep current values.
// Ownership is not part of the patch: user_id can never be changed
// through an update, whatever the request carries.
type ProjectPatch struct {
	Title       *string
	Description *string
	IsPrivate   *bool
}

// ProjectService wraps project business logic.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
}

func NewProjectService(projectRepo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

func (s *ProjectService) Create(ctx context.Context, ownerID uint, input ProjectInput) (*model.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	project := model.Project{
		UserID:      ownerID,
		Title:       title,
		Description: input.Description,
		IsPrivate:   input.IsPrivate,
	}
	if err := s.projectRepo.Create(ctx, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, userID *uint) ([]model.Project, error) {
	return s.projectRepo.List(ctx, userID)
}

// Copy duplicates a project for the requesting user. All fields carry
// over except the id, the owner and the title suffix; the copy and its
// audit row are one transaction. Ownership of the source is deliberately
// not checked: any user may copy any project they can resolve.
func (s *ProjectService) Copy(ctx context.Context, projectID, requestingUserID uint) (*model.Project, error) {
	source, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	copy := model.Project{
		UserID:      requestingUserID,
		Title:       source.Title + " (Copy)",
		Description: source.Description,
		IsPrivate:   source.IsPrivate,
	}
	if err := s.projectRepo.CreateCopy(ctx, source.ID, &copy, requestingUserID); err != nil {
		return nil, fmt.Errorf("copy project %d: %w", source.ID, err)
	}
	return &copy, nil
}

// Update applies the recognized patch fields and returns the reloaded
// entity.
func (s *ProjectService) Update(ctx context.Context, projectID uint, patch ProjectPatch) (*model.Project, error) {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
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
	if patch.IsPrivate != nil {
		fields["is_private"] = *patch.IsPrivate
	}
	if len(fields) == 0 {
		return project, nil
	}

	if err := s.projectRepo.UpdateFields(ctx, project, fields); err != nil {
		return nil, err
	}
	return project, nil
}

// ShareLink returns the public link for a project. The gate is the
// current privacy flag, re-evaluated on every call; nothing about
// sharing is stored.
func (s *ProjectService) ShareLink(ctx context.Context, projectID uint) (string, error) {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return "", err
	}
	if project.IsPrivate {
		return "", ErrProjectNotPublic
	}
	return fmt.Sprintf("/shared/project/%d", project.ID), nil
}

// Delete soft-deletes the project row only. Tasks underneath are not
// touched; they drop out of listings through the live-project filter.
func (s *ProjectService) Delete(ctx context.Context, projectID uint) error {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return err
	}
	return s.projectRepo.SoftDelete(ctx, project.ID)
}

// CopyLog returns the audit row recorded for a copied project.
func (s *ProjectService) CopyLog(ctx context.Context, newProjectID uint) (*model.ProjectCopyLog, error) {
	entry, err := s.projectRepo.CopyLogByNewProject(ctx, newProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return entry, nil
}
