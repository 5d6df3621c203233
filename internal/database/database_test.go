package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"

	"github.com/example/storefront/internal/models"
)

func TestOpen_MigratesTokenTable(t *testing.T) {
	db, err := Open(sqlite.Open("file:database_test?mode=memory&cache=shared"), zap.NewNop())
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.StoredToken{}))
}

func TestEnsureDatabase_SkipsNonPostgres(t *testing.T) {
	assert.NoError(t, ensureDatabase("file::memory:"))
	assert.NoError(t, ensureDatabase("postgres://localhost:5432"))
}
