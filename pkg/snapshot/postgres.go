package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/storefront/pkg/logger"
)

// Record is a persisted snapshot row
type Record struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Data      []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name
func (Record) TableName() string {
	return "snapshots"
}

// postgresStore implements Store on top of PostgreSQL via GORM
type postgresStore struct {
	db     *gorm.DB
	prefix string
}

func newPostgresStore(db *gorm.DB, prefix string) (*postgresStore, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshots table: %w", err)
	}
	return &postgresStore{db: db, prefix: prefix}, nil
}

func (s *postgresStore) Load(ctx context.Context, key string, v any) error {
	var record Record
	err := s.db.WithContext(ctx).First(&record, "key = ?", s.prefix+key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := json.Unmarshal(record.Data, v); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("key", key).
			Msg("Discarding corrupt snapshot record")
		return ErrNotFound
	}

	return nil
}

func (s *postgresStore) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	record := Record{Key: s.prefix + key, Data: data}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&Record{}, "key = ?", s.prefix+key).Error
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (s *postgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
