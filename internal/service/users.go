package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"raluma-api/internal/access"
	"raluma-api/internal/domain"
	"raluma-api/internal/repo"
	"raluma-api/pkg/utils"
)

const resetPasswordLength = 12

// UserService is the account directory for admins and above.
type UserService struct {
	store *repo.Store
	ids   *IdentityService
}

func NewUserService(store *repo.Store, ids *IdentityService) *UserService {
	return &UserService{store: store, ids: ids}
}

// List: superadmins see everyone, admins only plain users.
func (s *UserService) List(ctx context.Context, actor domain.Identity) ([]domain.User, error) {
	switch actor.Role {
	case domain.RoleSuperadmin:
		return s.store.Users().List(ctx)
	case domain.RoleAdmin:
		return s.store.Users().List(ctx, domain.RoleUser)
	default:
		return nil, domain.ErrAccessDenied
	}
}

func (s *UserService) Get(ctx context.Context, actor domain.Identity, id string) (*domain.User, error) {
	u, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanViewUser(actor, u) {
		return nil, domain.ErrAccessDenied
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, actor domain.Identity, in domain.UserCreate) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !access.CanManageUser(actor, &domain.User{Role: role}, &role) {
		return nil, domain.ErrAccessDenied
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Username:     in.Username,
		PasswordHash: hash,
		DisplayName:  in.DisplayName,
		Role:         role,
		Customer:     in.Customer,
		IsActive:     in.IsActive == nil || *in.IsActive,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.store.WithTx(ctx, func(tx *repo.Store) error {
		taken, err := tx.Users().ExistsByUsername(ctx, u.Username)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: username %q already taken", domain.ErrValidationConflict, u.Username)
		}
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Update merges the present fields. An empty password leaves it unchanged.
func (s *UserService) Update(ctx context.Context, actor domain.Identity, id string, in domain.UserUpdate) (*domain.User, error) {
	var out *domain.User
	err := s.store.WithTx(ctx, func(tx *repo.Store) error {
		u, err := tx.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !access.CanManageUser(actor, u, in.Role) {
			return domain.ErrAccessDenied
		}
		if in.DisplayName != nil {
			u.DisplayName = *in.DisplayName
		}
		if in.Role != nil {
			u.Role = *in.Role
		}
		if in.Customer != nil {
			u.Customer = in.Customer
		}
		if in.IsActive != nil {
			u.IsActive = *in.IsActive
		}
		if in.Password != nil && *in.Password != "" {
			if u.PasswordHash, err = hashPassword(*in.Password); err != nil {
				return err
			}
		}
		if err := tx.Users().Update(ctx, u); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.ids.Forget(ctx, id)
	return out, nil
}

// Delete refuses self-deletion before any role check.
func (s *UserService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	err := s.store.WithTx(ctx, func(tx *repo.Store) error {
		u, err := tx.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := access.CanDeleteUser(actor, u); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.ids.Forget(ctx, id)
	return nil
}

type PasswordReset struct {
	NewPassword string `json:"new_password"`
}

// ResetPassword stores a generated password and returns it once.
func (s *UserService) ResetPassword(ctx context.Context, actor domain.Identity, id string) (PasswordReset, error) {
	var out PasswordReset
	err := s.store.WithTx(ctx, func(tx *repo.Store) error {
		u, err := tx.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !access.CanManageUser(actor, u, nil) {
			return domain.ErrAccessDenied
		}
		out.NewPassword, err = resetPassword(ctx, tx, u)
		return err
	})
	if err != nil {
		return PasswordReset{}, err
	}
	s.ids.Forget(ctx, id)
	return out, nil
}

// ResetPasswordByUsername is the operator path used by the admin command.
// It skips the role checks.
func (s *UserService) ResetPasswordByUsername(ctx context.Context, username string) (string, error) {
	var pw, id string
	err := s.store.WithTx(ctx, func(tx *repo.Store) error {
		u, err := tx.Users().FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		id = u.ID
		pw, err = resetPassword(ctx, tx, u)
		return err
	})
	if err != nil {
		return "", err
	}
	s.ids.Forget(ctx, id)
	return pw, nil
}

func resetPassword(ctx context.Context, tx *repo.Store, u *domain.User) (string, error) {
	pw, err := utils.GeneratePassword(resetPasswordLength)
	if err != nil {
		return "", err
	}
	if u.PasswordHash, err = utils.HashPassword(pw); err != nil {
		return "", err
	}
	if err := tx.Users().Update(ctx, u); err != nil {
		return "", err
	}
	return pw, nil
}

// hashPassword reports input bcrypt cannot take as a validation error.
func hashPassword(pw string) (string, error) {
	hash, err := utils.HashPassword(pw)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password longer than 72 bytes", domain.ErrValidationConflict)
	}
	return hash, err
}
