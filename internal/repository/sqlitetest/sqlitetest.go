// Package sqlitetest provides throwaway in-memory databases carrying the
// production schema, for tests in any layer.
package sqlitetest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shortener-analytics/internal/domain"
)

// Open returns a fresh migrated in-memory database that is closed when the
// test ends. A single connection serialises access, which keeps concurrent
// writers from tripping over SQLite's database-level lock.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.Link{}, &domain.ClickEvent{}))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
