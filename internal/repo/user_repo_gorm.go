package repo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"raluma-api/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if isDupKey(err) {
		return fmt.Errorf("%w: username %q already taken", domain.ErrValidationConflict, u.Username)
	}
	return err
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

// List returns users in creation order, restricted to roles when given.
func (r *UserRepo) List(ctx context.Context, roles ...domain.Role) ([]domain.User, error) {
	users := []domain.User{}
	tx := r.db.WithContext(ctx).Model(&domain.User{})
	if len(roles) > 0 {
		tx = tx.Where("role IN ?", roles)
	}
	if err := tx.Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update writes every column except the immutable ones. Callers load u first.
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Model(u).
		Select("*").Omit("id", "username", "created_at").
		Updates(u).Error
}

func (r *UserRepo) TouchLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user", domain.ErrNotFound)
	}
	return nil
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ?", username).
		Count(&n).Error
	return n > 0, err
}
