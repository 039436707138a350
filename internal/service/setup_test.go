package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/gito/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close(gdb)
	})
	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB, email string) *db.User {
	t.Helper()
	user, err := NewUserService(gdb).Register(context.Background(), RegisterInput{
		Name:     "Test",
		Email:    email,
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}
