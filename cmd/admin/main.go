// Command admin runs maintenance tasks against the configured store.
//
//	admin migrate
//	admin reset-password -username anna
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"raluma-api/internal/core/config"
	"raluma-api/internal/core/database"
	"raluma-api/internal/core/logger"
	"raluma-api/internal/repo"
	"raluma-api/internal/schema"
	"raluma-api/internal/service"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin <migrate|reset-password> [flags]")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(logger.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	switch os.Args[1] {
	case "migrate":
		db := mustOpenDB(cfg, log)
		failed := schema.Run(ctx, db, log)
		if err := schema.EnsureSuperadmin(ctx, db, cfg.Bootstrap, log); err != nil {
			log.Fatal("bootstrap superadmin", zap.Error(err))
		}
		if len(failed) > 0 {
			log.Error("schema evolution incomplete", zap.Strings("failed", failed))
			os.Exit(1)
		}

	case "reset-password":
		fs := flag.NewFlagSet("reset-password", flag.ExitOnError)
		username := fs.String("username", "", "account to reset")
		_ = fs.Parse(os.Args[2:])
		if *username == "" {
			fs.Usage()
			os.Exit(2)
		}
		db := mustOpenDB(cfg, log)
		store := repo.NewStore(db)
		users := service.NewUserService(store, nil)
		pw, err := users.ResetPasswordByUsername(ctx, *username)
		if err != nil {
			log.Fatal("reset password", zap.String("username", *username), zap.Error(err))
		}
		fmt.Println(pw)

	default:
		usage()
	}
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
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
