package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phenrril/fashionshop/internal/domain"
)

// KVEntry is a row of local storage shared between devices.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:120"`
	Value     []byte `gorm:"type:bytea"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string { return "kv_entries" }

type KVRepo struct{ db *gorm.DB }

func NewKVRepo(db *gorm.DB) *KVRepo { return &KVRepo{db: db} }

func (r *KVRepo) Migrate() error {
	return r.db.AutoMigrate(&KVEntry{})
}

func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var e KVEntry
	if err := r.db.WithContext(ctx).First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e.Value, nil
}

func (r *KVRepo) Put(ctx context.Context, key string, value []byte) error {
	e := KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (r *KVRepo) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&KVEntry{}).Error
}
