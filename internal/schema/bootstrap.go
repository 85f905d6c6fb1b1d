package schema

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"raluma-api/internal/core/config"
	"raluma-api/internal/domain"
	"raluma-api/internal/repo"
	"raluma-api/pkg/utils"
)

// EnsureSuperadmin seeds the reserved superadmin account. It does nothing
// when a user with that username already exists, whatever its role.
func EnsureSuperadmin(ctx context.Context, db *gorm.DB, b config.Bootstrap, log *zap.Logger) error {
	users := repo.NewStore(db).Users()
	exists, err := users.ExistsByUsername(ctx, b.Username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := utils.HashPassword(b.Password)
	if err != nil {
		return err
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Username:     b.Username,
		PasswordHash: hash,
		DisplayName:  b.DisplayName,
		Role:         domain.RoleSuperadmin,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := users.Create(ctx, u); err != nil {
		return err
	}
	log.Warn("bootstrap superadmin created, change its password", zap.String("username", u.Username))
	return nil
}
