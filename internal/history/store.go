// Package history persists finished download runs in a local SQLite file
// so past outcomes survive restarts and can be listed from the CLI.
package history

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Record is one finished download run.
type Record struct {
	ID         string `gorm:"primaryKey"`
	URLs       string // newline-separated normalized URL list
	Format     string // format-selector expression, empty for engine default
	Status     string
	Message    string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store is a SQLite-backed history store.
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return &Store{db: db}, nil
}

// Add inserts one finished run.
func (s *Store) Add(rec Record) error {
	return s.db.Create(&rec).Error
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	var recs []Record
	err := s.db.Order("finished_at DESC").Limit(limit).Find(&recs).Error
	return recs, err
}

// Count returns the total number of recorded runs.
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.Model(&Record{}).Count(&count).Error
	return count, err
}

// Clear deletes all recorded runs.
func (s *Store) Clear() error {
	return s.db.Where("1 = 1").Delete(&Record{}).Error
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
