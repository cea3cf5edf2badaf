package repositories

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/huddlehq/huddle/internal/models"
	"github.com/huddlehq/huddle/internal/storage"
)

// setupTestDB opens a per-test in-memory sqlite database with the full
// schema migrated. cache=shared keeps every pooled connection on the same
// database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Password: "salt:hash",
		Name:     name,
		Role:     "user",
	}
	require.NoError(t, NewUserRepository(db).Create(user))
	return user
}
