package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"raluma-api/internal/domain"
	"raluma-api/internal/service"
	"raluma-api/internal/transport/http/ez"
)

type ProjectHandler struct{ projects *service.ProjectService }

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.ProjectSummary]{
		Method: http.MethodGet,
		Path:   "/projects",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.ProjectSummary, error) {
			id, _ := ez.Identity(c)
			ps, err := h.projects.List(c.Request.Context(), id)
			if err != nil {
				return nil, err
			}
			return domain.Summaries(ps), nil
		},
	})

	ez.RegisterAction(e, ez.Action[domain.ProjectCreate, *domain.Project]{
		Method: http.MethodPost,
		Path:   "/projects",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.ProjectCreate) (*domain.Project, error) {
			id, _ := ez.Identity(c)
			return h.projects.Create(c.Request.Context(), id, *in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Project]{
		Method: http.MethodGet,
		Path:   "/projects/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Project, error) {
			id, _ := ez.Identity(c)
			return h.projects.Get(c.Request.Context(), id, c.Param("id"))
		},
	})

	ez.RegisterAction(e, ez.Action[domain.ProjectUpdate, *domain.Project]{
		Method: http.MethodPut,
		Path:   "/projects/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.ProjectUpdate) (*domain.Project, error) {
			id, _ := ez.Identity(c)
			return h.projects.Update(c.Request.Context(), id, c.Param("id"), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/projects/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, _ := ez.Identity(c)
			return struct{}{}, h.projects.Delete(c.Request.Context(), id, c.Param("id"))
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Project]{
		Method: http.MethodPost,
		Path:   "/projects/:id/copy",
		Binder: ez.BindNone,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Project, error) {
			id, _ := ez.Identity(c)
			return h.projects.Copy(c.Request.Context(), id, c.Param("id"))
		},
	})
}
