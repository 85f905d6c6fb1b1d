package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"raluma-api/internal/domain"
	"raluma-api/internal/service"
	"raluma-api/internal/transport/http/ez"
)

type AuthHandler struct{ ids *service.IdentityService }

func NewAuthHandler(ids *service.IdentityService) *AuthHandler { return &AuthHandler{ids: ids} }

func (*AuthHandler) Priority() int { return 10 }

type loginIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) MountPublic(g *gin.RouterGroup) {
	ez.RegisterAction(ez.New(g), ez.Action[loginIn, service.Token]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (service.Token, error) {
			return h.ids.Login(c.Request.Context(), in.Username, in.Password)
		},
	})
}

func (h *AuthHandler) MountAPI(g *gin.RouterGroup) {
	ez.RegisterAction(ez.New(g), ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/auth/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			id, _ := ez.Identity(c)
			return h.ids.Me(c.Request.Context(), id)
		},
	})
}
