package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"raluma-api/internal/domain"
	"raluma-api/internal/service"
	"raluma-api/internal/transport/http/ez"
)

type SectionHandler struct{ sections *service.SectionService }

func NewSectionHandler(sections *service.SectionService) *SectionHandler {
	return &SectionHandler{sections: sections}
}

func (h *SectionHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Section]{
		Method: http.MethodGet,
		Path:   "/projects/:id/sections",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Section, error) {
			id, _ := ez.Identity(c)
			return h.sections.List(c.Request.Context(), id, c.Param("id"))
		},
	})

	ez.RegisterAction(e, ez.Action[domain.SectionPayload, *domain.Section]{
		Method: http.MethodPost,
		Path:   "/projects/:id/sections",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *domain.SectionPayload) (*domain.Section, error) {
			id, _ := ez.Identity(c)
			return h.sections.Create(c.Request.Context(), id, c.Param("id"), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[domain.SectionPayload, *domain.Section]{
		Method: http.MethodPut,
		Path:   "/projects/:id/sections/:sid",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.SectionPayload) (*domain.Section, error) {
			id, _ := ez.Identity(c)
			return h.sections.Update(c.Request.Context(), id, c.Param("id"), c.Param("sid"), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/projects/:id/sections/:sid",
		Binder: ez.BindNone,
		Auth:   true,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, _ := ez.Identity(c)
			return struct{}{}, h.sections.Delete(c.Request.Context(), id, c.Param("id"), c.Param("sid"))
		},
	})
}
