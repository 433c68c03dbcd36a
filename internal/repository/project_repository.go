package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// ProjectRepository handles CRUD for projects and the copy audit log.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns non-deleted projects, optionally filtered by owner.
func (r *ProjectRepository) List(ctx context.Context, userID *uint) ([]model.Project, error) {
	var projects []model.Project
	q := r.db.WithContext(ctx).Order("id")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// LiveIDs returns the ids of all non-deleted projects. Task listing
// intersects against this set so tasks under a deleted project vanish
// without being touched themselves.
func (r *ProjectRepository) LiveIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.Project{}).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list live project ids: %w", err)
	}
	return ids, nil
}

// UpdateFields applies a column map and reloads the row so the caller
// sees server-computed values such as updated_at.
func (r *ProjectRepository) UpdateFields(ctx context.Context, project *model.Project, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(project).Updates(fields).Error; err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return r.db.WithContext(ctx).First(project, project.ID).Error
}

// SoftDelete marks the project deleted. Its tasks are left alone.
func (r *ProjectRepository) SoftDelete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Project{}, id).Error; err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// CreateCopy persists a duplicated project together with its audit row.
// Both writes happen in one transaction so a failed log append cannot
// leave an unlogged copy behind.
func (r *ProjectRepository) CreateCopy(ctx context.Context, originalID uint, copy *model.Project, byUserID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(copy).Error; err != nil {
			return fmt.Errorf("create project copy: %w", err)
		}
		entry := model.ProjectCopyLog{
			OriginalProjectID: originalID,
			CopiedByUserID:    byUserID,
			NewProjectID:      copy.ID,
			CopiedAt:          time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("append copy log: %w", err)
		}
		return nil
	})
}

// CopyLogByNewProject fetches the audit row for a copied project.
func (r *ProjectRepository) CopyLogByNewProject(ctx context.Context, newProjectID uint) (*model.ProjectCopyLog, error) {
	var entry model.ProjectCopyLog
	if err := r.db.WithContext(ctx).Where("new_project_id = ?", newProjectID).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
