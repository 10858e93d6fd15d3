package services

import (
	"fmt"
	"strings"
	"testing"

	"dipout-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory store, namespaced per test so parallel
// tests never share state
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.NoShowEvent{},
		&models.Settings{},
		&models.NotificationLog{},
	))
	return db
}

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }

func sptr(v string) *string { return &v }

func bptr(v bool) *bool { return &v }
