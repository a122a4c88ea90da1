package db

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fatflowers/letterpay/pkg/tool"
)

// OpenTestDB returns a migrated, private in-memory SQLite database for tests.
// A single connection is used so concurrent callers queue instead of hitting
// SQLITE_BUSY.
func OpenTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", tool.GenerateUUIDV7())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard, NowFunc: NowUTC})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}
