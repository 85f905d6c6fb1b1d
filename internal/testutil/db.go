// Package testutil opens throwaway SQLite stores for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"raluma-api/internal/core/database"
	"raluma-api/internal/schema"
)

// OpenDB returns an empty database backed by a file in t.TempDir().
// One connection keeps concurrent tests on SQLite free of lock errors.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          "file:" + filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		LogLevel:     "silent",
		Logger:       zap.NewNop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewDB returns a database with every schema step applied.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db := OpenDB(t)
	failed := schema.Run(context.Background(), db, zaptest.NewLogger(t))
	require.Empty(t, failed)
	return db
}
