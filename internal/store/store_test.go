package store

import (
	"context"
	"fmt"
	"testing"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database migrated with the full schema.
// Each test gets its own named shared-cache DB so gorm's connection pool sees
// a single store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func mustCreateUser(t *testing.T, identity *IdentityStore, username string) *models.User {
	t.Helper()

	user, err := identity.CreateUser(context.Background(), NewUser{
		Username: username,
		Email:    username + "@example.com",
		Password: "testpass1234",
	})
	require.NoError(t, err)
	return user
}

func mustCreateCategory(t *testing.T, gdb *gorm.DB, name string) *models.Category {
	t.Helper()

	category := models.Category{Name: name}
	require.NoError(t, gdb.Create(&category).Error)
	return &category
}
