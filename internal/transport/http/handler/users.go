package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"raluma-api/internal/domain"
	"raluma-api/internal/service"
	"raluma-api/internal/transport/http/ez"
)

// UserHandler is the admin-only account directory.
type UserHandler struct{ users *service.UserService }

func NewUserHandler(users *service.UserService) *UserHandler { return &UserHandler{users: users} }

func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.User]{
		Method:  http.MethodGet,
		Path:    "/users",
		Binder:  ez.BindNone,
		Auth:    true,
		MinRole: domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			id, _ := ez.Identity(c)
			return h.users.List(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[domain.UserCreate, *domain.User]{
		Method:  http.MethodPost,
		Path:    "/users",
		Binder:  ez.BindJSON,
		Auth:    true,
		MinRole: domain.RoleAdmin,
		Status:  http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.UserCreate) (*domain.User, error) {
			id, _ := ez.Identity(c)
			return h.users.Create(c.Request.Context(), id, *in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method:  http.MethodGet,
		Path:    "/users/:id",
		Binder:  ez.BindNone,
		Auth:    true,
		MinRole: domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			id, _ := ez.Identity(c)
			return h.users.Get(c.Request.Context(), id, c.Param("id"))
		},
	})

	ez.RegisterAction(e, ez.Action[domain.UserUpdate, *domain.User]{
		Method:  http.MethodPut,
		Path:    "/users/:id",
		Binder:  ez.BindJSON,
		Auth:    true,
		MinRole: domain.RoleAdmin,
		Handler: func(c *gin.Context, in *domain.UserUpdate) (*domain.User, error) {
			id, _ := ez.Identity(c)
			return h.users.Update(c.Request.Context(), id, c.Param("id"), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method:  http.MethodDelete,
		Path:    "/users/:id",
		Binder:  ez.BindNone,
		Auth:    true,
		MinRole: domain.RoleAdmin,
		Status:  http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, _ := ez.Identity(c)
			return struct{}{}, h.users.Delete(c.Request.Context(), id, c.Param("id"))
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, service.PasswordReset]{
		Method:  http.MethodPost,
		Path:    "/users/:id/reset-password",
		Binder:  ez.BindNone,
		Auth:    true,
		MinRole: domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *struct{}) (service.PasswordReset, error) {
			id, _ := ez.Identity(c)
			return h.users.ResetPassword(c.Request.Context(), id, c.Param("id"))
		},
	})
}
