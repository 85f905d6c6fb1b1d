package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"raluma-api/internal/domain"
	"raluma-api/pkg/utils"
)

// "order" is a reserved word; going through clause.Column keeps it quoted
// for every dialect.
var (
	byOrder     = clause.OrderByColumn{Column: clause.Column{Name: "order"}}
	byOrderDesc = clause.OrderByColumn{Column: clause.Column{Name: "order"}, Desc: true}
)

// SectionRepo stores sections of an already authorized project. It only
// checks that rows exist.
type SectionRepo struct{ db *gorm.DB }

func (r *SectionRepo) List(ctx context.Context, projectID string) ([]domain.Section, error) {
	sections := []domain.Section{}
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order(byOrder).Order("id").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *SectionRepo) Get(ctx context.Context, projectID, id string) (*domain.Section, error) {
	var s domain.Section
	err := r.db.WithContext(ctx).
		First(&s, "id = ? AND project_id = ?", id, projectID).Error
	if err != nil {
		return nil, notFound(err, "section")
	}
	return &s, nil
}

// NextOrder is one past the highest order in the project, 1 when empty.
// Retired values are never handed out again since it reads the live maximum.
func (r *SectionRepo) NextOrder(ctx context.Context, projectID string) (int, error) {
	var orders []int
	err := r.db.WithContext(ctx).Model(&domain.Section{}).
		Where("project_id = ?", projectID).
		Order(byOrderDesc).Limit(1).
		Pluck("order", &orders).Error
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 1, nil
	}
	return orders[0] + 1, nil
}

// Create appends a section at NextOrder.
func (r *SectionRepo) Create(ctx context.Context, projectID string, f domain.SectionFields) (*domain.Section, error) {
	next, err := r.NextOrder(ctx, projectID)
	if err != nil {
		return nil, err
	}
	s := &domain.Section{
		ID:            utils.NewID(),
		ProjectID:     projectID,
		Order:         next,
		SectionFields: f,
	}
	if err := r.Insert(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Insert stores s as given, order included.
func (r *SectionRepo) Insert(ctx context.Context, s *domain.Section) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// Replace overwrites every field of the section, order included.
func (r *SectionRepo) Replace(ctx context.Context, projectID, id string, f domain.SectionFields, order int) (*domain.Section, error) {
	s, err := r.Get(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	s.SectionFields = f
	s.Order = order
	err = r.db.WithContext(ctx).Model(s).
		Select("*").Omit("id", "project_id").
		Updates(s).Error
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Delete leaves the remaining orders untouched.
func (r *SectionRepo) Delete(ctx context.Context, projectID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", id, projectID).
		Delete(&domain.Section{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: section", domain.ErrNotFound)
	}
	return nil
}
