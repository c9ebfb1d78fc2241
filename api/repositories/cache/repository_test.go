package repositories

import (
	"context"
	"gotierlist/api/repositories/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const migrationsPath = "../../../migrations"

func TestNewCacheRepository(t *testing.T) {
	repository := NewCacheRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

func TestCacheRepository(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t, migrationsPath)
	defer cleanup()

	repository := NewCacheRepository(db)
	ctx := context.Background()

	require.NoError(t, repository.SetKey(ctx, "ddragon:champion:103", []byte(`{"id": "103", "name": "Ahri"}`)))
	require.NoError(t, repository.SetKey(ctx, "ddragon:champion:266", []byte(`{"id": "266", "name": "Aatrox"}`)))
	require.NoError(t, repository.SetKey(ctx, "other:key", []byte(`{}`)))

	t.Run("getkey", func(t *testing.T) {
		value, err := repository.GetKey(ctx, "ddragon:champion:103")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id": "103", "name": "Ahri"}`, value)
	})

	t.Run("getkeymissing", func(t *testing.T) {
		_, err := repository.GetKey(ctx, "ddragon:champion:1")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("upsert", func(t *testing.T) {
		require.NoError(t, repository.SetKey(ctx, "ddragon:champion:103", []byte(`{"id": "103", "name": "Ahri", "title": "the Nine-Tailed Fox"}`)))

		value, err := repository.GetKey(ctx, "ddragon:champion:103")
		require.NoError(t, err)
		assert.Contains(t, value, "Nine-Tailed")
	})

	t.Run("getbyprefix", func(t *testing.T) {
		entries, err := repository.GetByPrefix(ctx, "ddragon:champion:")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "ddragon:champion:103", entries[0].CacheKey)
		assert.Equal(t, "ddragon:champion:266", entries[1].CacheKey)
	})
}
