package repositories

import (
	"context"
	"gotierlist/pkg/database/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Public Interface.
type CacheRepository interface {
	GetKey(ctx context.Context, key string) (string, error)
	GetByPrefix(ctx context.Context, prefix string) ([]*models.CacheBackup, error)
	SetKey(ctx context.Context, key string, value []byte) error
}

// Cache repository structure.
type cacheRepository struct {
	db *gorm.DB
}

// Create a cache repository.
func NewCacheRepository(db *gorm.DB) CacheRepository {
	return &cacheRepository{db: db}
}

// GetKey gets the given key value.
// Should be used as a Redis fallback.
func (cr *cacheRepository) GetKey(ctx context.Context, key string) (string, error) {
	var cacheEntry models.CacheBackup

	err := cr.db.WithContext(ctx).
		Where("cache_key = ?", key).
		First(&cacheEntry).Error
	if err != nil {
		return "", err
	}

	return string(cacheEntry.CacheValue), nil
}

// GetByPrefix returns every entry whose key starts with the prefix.
func (cr *cacheRepository) GetByPrefix(ctx context.Context, prefix string) ([]*models.CacheBackup, error) {
	var cacheEntries []*models.CacheBackup

	err := cr.db.WithContext(ctx).
		Where("cache_key LIKE ?", prefix+"%").
		Order("cache_key").
		Find(&cacheEntries).Error
	if err != nil {
		return nil, err
	}

	return cacheEntries, nil
}

// SetKey upserts the given key value.
func (cr *cacheRepository) SetKey(ctx context.Context, key string, value []byte) error {
	entry := &models.CacheBackup{
		CacheKey:   key,
		CacheValue: datatypes.JSON(value),
	}

	return cr.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"cache_value"}),
		}).
		Create(entry).Error
}
