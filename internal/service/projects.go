package service

import (
	"context"
	"time"

	"raluma-api/internal/access"
	"raluma-api/internal/domain"
	"raluma-api/internal/repo"
	"raluma-api/pkg/utils"
)

const copySuffix = "-copy"

type ProjectService struct {
	store *repo.Store
}

func NewProjectService(store *repo.Store) *ProjectService {
	return &ProjectService{store: store}
}

// List: plain users see only what they created.
func (s *ProjectService) List(ctx context.Context, actor domain.Identity) ([]domain.Project, error) {
	owner := ""
	if !actor.Role.AtLeast(domain.RoleAdmin) {
		owner = actor.ID
	}
	return s.store.Projects().List(ctx, owner)
}

// Create always assigns the caller as owner.
func (s *ProjectService) Create(ctx context.Context, actor domain.Identity, in domain.ProjectCreate) (*domain.Project, error) {
	p := in.NewProject(utils.NewID(), actor.ID, time.Now().UTC())
	if err := s.store.Projects().Create(ctx, &p); err != nil {
		return nil, err
	}
	p.Sections = []domain.Section{}
	return &p, nil
}

func (s *ProjectService) Get(ctx context.Context, actor domain.Identity, id string) (*domain.Project, error) {
	return loadProject(ctx, s.store, actor, id)
}

// Update merges the present fields and always bumps updated_at.
func (s *ProjectService) Update(ctx context.Context, actor domain.Identity, id string, in domain.ProjectUpdate) (*domain.Project, error) {
	var out *domain.Project
	err := s.store.WithTx(ctx, func(tx *repo.Store) error {
		p, err := loadProject(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		in.Apply(p)
		p.UpdatedAt = time.Now().UTC()
		if err := tx.Projects().Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

// Delete removes the project together with its sections.
func (s *ProjectService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	return s.store.WithTx(ctx, func(tx *repo.Store) error {
		if _, err := findProject(ctx, tx, actor, id); err != nil {
			return err
		}
		return tx.Projects().Delete(ctx, id)
	})
}

// Copy clones the project and its sections, orders included, under the
// caller's ownership. Nothing is kept if any insert fails.
func (s *ProjectService) Copy(ctx context.Context, actor domain.Identity, id string) (*domain.Project, error) {
	var out *domain.Project
	err := s.store.WithTx(ctx, func(tx *repo.Store) error {
		src, err := loadProject(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		dst := domain.Project{
			ID:        utils.NewID(),
			Number:    src.Number + copySuffix,
			Customer:  src.Customer,
			System:    src.System,
			Subtype:   src.Subtype,
			CreatedBy: actor.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Projects().Create(ctx, &dst); err != nil {
			return err
		}
		for _, sec := range src.Sections {
			c := domain.Section{
				ID:            utils.NewID(),
				ProjectID:     dst.ID,
				Order:         sec.Order,
				SectionFields: sec.SectionFields,
			}
			if err := tx.Sections().Insert(ctx, &c); err != nil {
				return err
			}
			dst.Sections = append(dst.Sections, c)
		}
		if dst.Sections == nil {
			dst.Sections = []domain.Section{}
		}
		out = &dst
		return nil
	})
	return out, err
}

// findProject checks existence before ownership, so a foreign id is 403 and
// a missing one 404.
func findProject(ctx context.Context, st *repo.Store, actor domain.Identity, id string) (*domain.Project, error) {
	p, err := st.Projects().Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessProject(actor, p) {
		return nil, domain.ErrAccessDenied
	}
	return p, nil
}

// loadProject is findProject with the sections attached.
func loadProject(ctx context.Context, st *repo.Store, actor domain.Identity, id string) (*domain.Project, error) {
	p, err := st.Projects().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessProject(actor, p) {
		return nil, domain.ErrAccessDenied
	}
	return p, nil
}
