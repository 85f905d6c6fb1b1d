package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"raluma-api/internal/core/auth"
	"raluma-api/internal/core/cache"
	"raluma-api/internal/domain"
	"raluma-api/internal/repo"
	"raluma-api/internal/testutil"
	"raluma-api/pkg/utils"
)

const testPassword = "s3cret-pw"

type fixture struct {
	db       *gorm.DB
	store    *repo.Store
	cache    *cache.Cache
	jwt      *auth.JWTer
	ids      *IdentityService
	users    *UserService
	projects *ProjectService
	sections *SectionService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	store := repo.NewStore(db)

	mr := miniredis.RunT(t)
	c := cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })

	j := &auth.JWTer{Secret: []byte("test"), Issuer: "raluma-test", TTL: time.Hour}
	ids := NewIdentityService(store, j, c, time.Minute)
	return &fixture{
		db:       db,
		store:    store,
		cache:    c,
		jwt:      j,
		ids:      ids,
		users:    NewUserService(store, ids),
		projects: NewProjectService(store),
		sections: NewSectionService(store),
	}
}

func (f *fixture) mkUser(t *testing.T, username string, role domain.Role) domain.Identity {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	u := &domain.User{
		ID:           utils.NewID(),
		Username:     username,
		PasswordHash: hash,
		DisplayName:  username,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u.Identity()
}

func (f *fixture) mkProject(t *testing.T, owner domain.Identity, number string) *domain.Project {
	t.Helper()
	p, err := f.projects.Create(context.Background(), owner, domain.ProjectCreate{Number: number, Customer: "ACME"})
	require.NoError(t, err)
	return p
}

func (f *fixture) mkSection(t *testing.T, owner domain.Identity, projectID, name string) *domain.Section {
	t.Helper()
	s, err := f.sections.Create(context.Background(), owner, projectID, domain.SectionPayload{Name: name})
	require.NoError(t, err)
	return s
}

func ptr[T any](v T) *T { return &v }

func projectIDs(ps []domain.Project) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}
