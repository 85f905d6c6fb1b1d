package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"raluma-api/internal/core/auth"
	"raluma-api/internal/core/cache"
	"raluma-api/internal/domain"
	"raluma-api/internal/repo"
	"raluma-api/pkg/utils"
)

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// IdentityService issues tokens and resolves them back to live identities.
// The role always comes from the stored user, never from the token.
type IdentityService struct {
	store *repo.Store
	jwt   *auth.JWTer
	cache *cache.Cache // nil disables caching
	ttl   time.Duration

	// settle is how long after Forget the key is dropped a second time.
	settle time.Duration
}

func NewIdentityService(store *repo.Store, jwt *auth.JWTer, c *cache.Cache, ttl time.Duration) *IdentityService {
	return &IdentityService{store: store, jwt: jwt, cache: c, ttl: ttl, settle: time.Second}
}

func (s *IdentityService) Login(ctx context.Context, username, password string) (Token, error) {
	users := s.store.Users()
	u, err := users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return Token{}, domain.ErrAuthenticationFailure
	}
	if err != nil {
		return Token{}, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return Token{}, domain.ErrAuthenticationFailure
	}
	if !u.IsActive {
		return Token{}, fmt.Errorf("%w: account deactivated", domain.ErrAuthenticationFailure)
	}

	if err := users.TouchLogin(ctx, u.ID, time.Now().UTC()); err != nil {
		return Token{}, err
	}
	s.Forget(ctx, u.ID)

	tok, err := s.jwt.Issue(*u)
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: tok, TokenType: "bearer"}, nil
}

// Resolve verifies the token and loads the identity it names.
func (s *IdentityService) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return domain.Identity{}, err
	}
	id, err := cache.GetOrLoadJSON(s.cache, ctx, identityKey(claims.Subject), s.ttl,
		func(ctx context.Context) (*domain.Identity, error) {
			u, err := s.store.Users().FindByID(ctx, claims.Subject)
			if err != nil {
				return nil, err
			}
			ident := u.Identity()
			return &ident, nil
		})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Identity{}, domain.ErrIdentityNotFound
	}
	if err != nil {
		return domain.Identity{}, err
	}
	if id == nil || !id.IsActive {
		return domain.Identity{}, domain.ErrIdentityNotFound
	}
	return *id, nil
}

// Me returns the full record of the caller.
func (s *IdentityService) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	u, err := s.store.Users().FindByID(ctx, id.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrIdentityNotFound
	}
	return u, err
}

// Forget drops the cached identity so the next request reloads it. A Resolve
// that read the row before the write committed can store the old identity
// again, so the key is dropped once more after settle.
func (s *IdentityService) Forget(ctx context.Context, userID string) {
	if s == nil || s.cache == nil {
		return
	}
	key := identityKey(userID)
	s.cache.Del(ctx, key)
	if s.settle <= 0 {
		return
	}
	time.AfterFunc(s.settle, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.cache.Del(ctx, key)
	})
}

func identityKey(userID string) string { return "identity:" + userID }
