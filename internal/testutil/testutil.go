// Package testutil, testlerin ortak veritabanı kurulumunu sağlar.
package testutil

import (
	"testing"

	"sps-backend/internal/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB: her test için izole in-memory sqlite açar ve şemayı kurar.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func Float(v float64) *float64 { return &v }

func Str(s string) *string { return &s }
