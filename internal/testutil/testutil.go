// Package testutil opens throwaway databases and seeds rows for tests.
package testutil

import (
	"testing"

	"foodgram/internal/db"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DB returns a migrated in-memory SQLite database private to the test.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	logrus.SetLevel(logrus.WarnLevel)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	gdb, err := db.Open(db.Options{Driver: db.DriverSQLite, DSN: dsn})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
