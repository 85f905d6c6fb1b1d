package service

import (
	"context"
	"sync"

	"raluma-api/internal/domain"
	"raluma-api/internal/repo"
)

// SectionService authorizes the parent project and hands the rest to the
// section repository.
type SectionService struct {
	store    *repo.Store
	ordering keyedMutex
}

func NewSectionService(store *repo.Store) *SectionService {
	return &SectionService{store: store}
}

func (s *SectionService) List(ctx context.Context, actor domain.Identity, projectID string) ([]domain.Section, error) {
	if _, err := findProject(ctx, s.store, actor, projectID); err != nil {
		return nil, err
	}
	return s.store.Sections().List(ctx, projectID)
}

// Create appends the section after the current highest order. Creates for
// the same project are serialized within this process; separate processes
// can still race and write a duplicate order.
func (s *SectionService) Create(ctx context.Context, actor domain.Identity, projectID string, in domain.SectionPayload) (*domain.Section, error) {
	unlock := s.ordering.Lock(projectID)
	defer unlock()

	var out *domain.Section
	err := s.store.WithTx(ctx, func(tx *repo.Store) error {
		if _, err := findProject(ctx, tx, actor, projectID); err != nil {
			return err
		}
		sec, err := tx.Sections().Create(ctx, projectID, in.Fields())
		out = sec
		return err
	})
	return out, err
}

// Update replaces every field, order included; omitted ones fall back to
// their defaults.
func (s *SectionService) Update(ctx context.Context, actor domain.Identity, projectID, sectionID string, in domain.SectionPayload) (*domain.Section, error) {
	var out *domain.Section
	err := s.store.WithTx(ctx, func(tx *repo.Store) error {
		if _, err := findProject(ctx, tx, actor, projectID); err != nil {
			return err
		}
		sec, err := tx.Sections().Replace(ctx, projectID, sectionID, in.Fields(), in.Order)
		out = sec
		return err
	})
	return out, err
}

func (s *SectionService) Delete(ctx context.Context, actor domain.Identity, projectID, sectionID string) error {
	return s.store.WithTx(ctx, func(tx *repo.Store) error {
		if _, err := findProject(ctx, tx, actor, projectID); err != nil {
			return err
		}
		return tx.Sections().Delete(ctx, projectID, sectionID)
	})
}

// keyedMutex hands out one mutex per key and forgets it once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedEntry)
	}
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
