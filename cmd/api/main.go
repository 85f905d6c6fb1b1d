package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"raluma-api/internal/core/auth"
	"raluma-api/internal/core/cache"
	"raluma-api/internal/core/config"
	"raluma-api/internal/core/database"
	"raluma-api/internal/core/logger"
	"raluma-api/internal/core/server"
	"raluma-api/internal/repo"
	"raluma-api/internal/schema"
	"raluma-api/internal/service"
	"raluma-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(logger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		App:   cfg.App.Name,
		File: logger.FileRotate{
			Enable:     cfg.Log.File.Enable,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	defer cleanup()
	undo := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undo()

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(log.Named("gin"), zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log.Named("gin"), zapcore.ErrorLevel)

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	ctx := context.Background()
	if failed := schema.Run(ctx, db, log); len(failed) > 0 {
		log.Warn("schema evolution incomplete", zap.Strings("failed", failed))
	}
	if err := schema.EnsureSuperadmin(ctx, db, cfg.Bootstrap, log); err != nil {
		log.Fatal("bootstrap superadmin", zap.Error(err))
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	rc := openCache(ctx, cfg.Redis, log)
	defer rc.Close()

	store := repo.NewStore(db)
	ids := service.NewIdentityService(store, jwter, rc, time.Duration(cfg.Redis.IdentityTTLSec)*time.Second)
	r := router.NewAPIEngine(router.Deps{
		Log:      log,
		HTTP:     cfg.App.HTTP,
		CORS:     cfg.CORS,
		Store:    store,
		Identity: ids,
		Users:    service.NewUserService(store, ids),
		Projects: service.NewProjectService(store),
		Sections: service.NewSectionService(store),
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("raluma api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	go func() {
		if err := server.StartHTTP(srv, log); err != nil {
			log.Fatal("raluma api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	if err := server.Shutdown(srv, 10*time.Second); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("raluma api stopped gracefully")
}

// openCache returns nil when redis is not configured. An unreachable redis
// is only a warning; identity lookups then hit the database.
func openCache(ctx context.Context, c config.Redis, l *zap.Logger) *cache.Cache {
	if c.Addr == "" {
		l.Info("identity cache disabled")
		return nil
	}
	rc := cache.New(c.Addr, c.Password, c.DB)
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pctx); err != nil {
		l.Warn("redis unreachable, continuing without cache", zap.String("addr", c.Addr), zap.Error(err))
	}
	return rc
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		PrepareStmt:        cfg.DB.PrepareStmt,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Ping(ctx, db); err != nil {
		l.Fatal("db ping", zap.Error(err))
	}
	return db
}
