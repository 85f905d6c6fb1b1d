package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"raluma-api/internal/core/database"
	"raluma-api/internal/domain"
)

// Store groups the repositories over one connection or one transaction.
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Users() *UserRepo       { return &UserRepo{db: s.db} }
func (s *Store) Projects() *ProjectRepo { return &ProjectRepo{db: s.db} }
func (s *Store) Sections() *SectionRepo { return &SectionRepo{db: s.db} }

// WithTx runs fn against a Store bound to a single transaction. Returning an
// error from fn rolls everything back.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Ping(ctx context.Context) error { return database.Ping(ctx, s.db) }

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	return err
}

func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}
