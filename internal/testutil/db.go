// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CryptoYield/CryptoYield/internal/db/models"
)

// NewDB creates a migrated in-memory SQLite database.
// A single connection is used so every statement sees the same database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")

	return db
}

// FailOn makes every statement of kind against table fail with err.
// kind is one of create, query, update or delete. The returned func removes
// the fault again.
func FailOn(t *testing.T, db *gorm.DB, kind, table string, err error) func() {
	t.Helper()

	name := "testutil:fail_" + kind + "_" + table
	fn := func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(err)
		}
	}

	var (
		regErr error
		remove func() error
	)

	switch kind {
	case "create":
		regErr = db.Callback().Create().Before("gorm:create").Register(name, fn)
		remove = func() error { return db.Callback().Create().Remove(name) }
	case "query":
		regErr = db.Callback().Query().Before("gorm:query").Register(name, fn)
		remove = func() error { return db.Callback().Query().Remove(name) }
	case "update":
		regErr = db.Callback().Update().Before("gorm:update").Register(name, fn)
		remove = func() error { return db.Callback().Update().Remove(name) }
	case "delete":
		regErr = db.Callback().Delete().Before("gorm:delete").Register(name, fn)
		remove = func() error { return db.Callback().Delete().Remove(name) }
	default:
		t.Fatalf("unknown callback kind %q", kind)
	}

	require.NoError(t, regErr)

	return func() {
		t.Helper()
		require.NoError(t, remove())
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
