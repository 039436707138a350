package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DateLayout is the storage format of every calendar date column.
const DateLayout = "2006-01-02"

// Options selects the database backend. A non-empty URL wins over Path.
type Options struct {
	Path   string
	URL    string
	Silent bool
}

// Open connects to postgres when a URL is given, otherwise to the sqlite file at
// Path (default gito.db), and migrates the schema.
func Open(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if opts.Silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	var dialector gorm.Dialector
	if url := strings.TrimSpace(opts.URL); url != "" {
		dialector = postgres.Open(url)
	} else {
		path := strings.TrimSpace(opts.Path)
		if path == "" {
			path = "gito.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(path)
	}

	gdb, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate creates or updates the tables for every model.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&User{}, &Task{}, &PrayerLog{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the pool behind gdb.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
