package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/storefront/internal/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StoredToken{}))

	return db
}

func TestTokenStore_LoadMissing(t *testing.T) {
	store := NewTokenStore(setupTestDB(t))

	token, ok, err := store.Load(context.Background(), "token")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, token)
}

func TestTokenStore_SaveAndLoad(t *testing.T) {
	store := NewTokenStore(setupTestDB(t))
	ctx := context.Background()
	exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	require.NoError(t, store.Save(ctx, "token", "abc", &exp))

	token, ok, err := store.Load(ctx, "token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", token.Token)
	require.NotNil(t, token.ExpiresAt)
	assert.True(t, exp.Equal(*token.ExpiresAt))
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", token.ID.String())
}

func TestTokenStore_SaveReplaces(t *testing.T) {
	db := setupTestDB(t)
	store := NewTokenStore(db)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "token", "first", nil))
	require.NoError(t, store.Save(ctx, "token", "second", nil))
	require.NoError(t, store.Save(ctx, "admin-token", "other", nil))

	token, ok, err := store.Load(ctx, "token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", token.Token)
	assert.Nil(t, token.ExpiresAt)

	var count int64
	require.NoError(t, db.Model(&models.StoredToken{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestTokenStore_Delete(t *testing.T) {
	store := NewTokenStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "token", "abc", nil))
	require.NoError(t, store.Delete(ctx, "token"))
	require.NoError(t, store.Delete(ctx, "token"))

	_, ok, err := store.Load(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}
