package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"raluma-api/internal/core/config"
	"raluma-api/internal/core/server"
	"raluma-api/internal/repo"
	"raluma-api/internal/service"
	"raluma-api/internal/transport/http/handler"
	mdw "raluma-api/internal/transport/http/middleware"
)

type Deps struct {
	Log      *zap.Logger
	HTTP     config.HTTP
	CORS     config.CORS
	Store    *repo.Store
	Identity *service.IdentityService
	Users    *service.UserService
	Projects *service.ProjectService
	Sections *service.SectionService
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log, d.CORS.AllowedOrigins)

	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(d.Log),
		mdw.Metrics(),
	)
	if d.HTTP.RPS > 0 {
		r.Use(mdw.RateLimitPerIP(rate.Limit(d.HTTP.RPS), d.HTTP.Burst))
	}
	if d.HTTP.MaxConcurrent > 0 {
		r.Use(mdw.ConcurrencyLimit(d.HTTP.MaxConcurrent))
	}
	if d.HTTP.MaxBodyMB > 0 {
		r.Use(mdw.MaxBodyBytes(d.HTTP.MaxBodyMB << 20))
	}
	if d.HTTP.RequestTimeoutSec > 0 {
		r.Use(mdw.Timeout(time.Duration(d.HTTP.RequestTimeoutSec) * time.Second))
	}

	r.GET("/health", handler.Health(d.Store))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/api")
	authed := r.Group("/api")
	authed.Use(mdw.AuthJWT(d.Identity))

	var reg Registry
	reg.Register(
		handler.NewAuthHandler(d.Identity),
		handler.NewProjectHandler(d.Projects),
		handler.NewSectionHandler(d.Sections),
		handler.NewUserHandler(d.Users),
	)
	reg.MountAll(public, authed)
	return r
}
