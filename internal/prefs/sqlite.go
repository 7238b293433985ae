package prefs

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Preference is one stored setting.
type Preference struct {
	ID        uint   `gorm:"primaryKey"`
	Owner     string `gorm:"not null;uniqueIndex:idx_owner_key"`
	Key       string `gorm:"column:pref_key;not null;uniqueIndex:idx_owner_key"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// SQLiteStore keeps preferences in a local SQLite file through GORM.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the preference database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening preference database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Preference{}); err != nil {
		return nil, fmt.Errorf("migrating preference database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, owner string) (map[string]string, error) {
	var rows []Preference
	if err := s.db.WithContext(ctx).Where("owner = ?", owner).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

func (s *SQLiteStore) Save(ctx context.Context, owner string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]Preference, 0, len(values))
	for k, v := range values {
		rows = append(rows, Preference{Owner: owner, Key: k, Value: v, UpdatedAt: now})
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, owner string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Where("owner = ? AND pref_key IN ?", owner, keys).
		Delete(&Preference{}).Error
	if err != nil {
		return fmt.Errorf("removing preferences: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
