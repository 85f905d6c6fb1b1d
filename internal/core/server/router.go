package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter returns an engine with panic recovery and, when origins are
// configured, CORS for the front end.
func NewRouter(l *zap.Logger, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.RecoveryWithZap(l, true))
	if len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	return r
}

// StartHTTP blocks until the server stops; a graceful Shutdown is not an error.
func StartHTTP(srv *http.Server, l *zap.Logger) error {
	l.Info("http starting", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    rt,
		WriteTimeout:   wt,
		IdleTimeout:    it,
		MaxHeaderBytes: 1 << 20,
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
