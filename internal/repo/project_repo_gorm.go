package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"raluma-api/internal/domain"
)

type ProjectRepo struct{ db *gorm.DB }

// List returns projects newest first. An empty ownerID lists every project.
func (r *ProjectRepo) List(ctx context.Context, ownerID string) ([]domain.Project, error) {
	projects := []domain.Project{}
	tx := r.db.WithContext(ctx).Model(&domain.Project{})
	if ownerID != "" {
		tx = tx.Where("created_by = ?", ownerID)
	}
	if err := tx.Order("created_at desc").Order("id desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

// Find loads the project row alone.
func (r *ProjectRepo) Find(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "project")
	}
	return &p, nil
}

// Get loads the project with its sections in order.
func (r *ProjectRepo) Get(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order(byOrder) }).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "project")
	}
	if p.Sections == nil {
		p.Sections = []domain.Section{}
	}
	return &p, nil
}

// Update writes every scalar column of p and bumps updated_at.
// Ownership and creation time are never rewritten.
func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Model(p).
		Select("*").Omit("id", "created_by", "created_at", clause.Associations).
		Updates(p).Error
}

// Delete removes the project and its sections. Run it inside WithTx.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("project_id = ?", id).Delete(&domain.Section{}).Error; err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&domain.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: project", domain.ErrNotFound)
	}
	return nil
}
