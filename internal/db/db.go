package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/askhat-bs/trackd/internal/models"
)

var DB *gorm.DB

// timeNow is swapped out in tests.
var timeNow = time.Now

// Initialize sets up the database connection and runs migrations.
// An empty path opens an in-memory database.
func Initialize(path string) error {
	if path == "" {
		path = "file::memory:?cache=shared"
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db

	if err := runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// DefaultDatabasePath returns the path to the SQLite database file.
func DefaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".trackd", "trackd.db"), nil
}

// runMigrations creates/updates the database schema.
func runMigrations() error {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TimeLog{},
	); err != nil {
		return err
	}

	// Storage-level guard for the single-active-timer invariant: at most
	// one open log per user, regardless of request interleaving.
	return DB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_time_logs_active_per_user
		 ON time_logs(user_id) WHERE end_time IS NULL`,
	).Error
}

// Close closes the database connection.
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
