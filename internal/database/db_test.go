package database

import (
	"testing"

	"sps-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestGetSettingsLazilyCreatesSingleRow(t *testing.T) {
	db := newDB(t)

	settings, err := GetSettings(db)
	require.NoError(t, err)
	assert.Equal(t, models.SettingsID, settings.ID)
	assert.Equal(t, models.DefaultYears, yearsAsc(settings))

	// İkinci okuma yeni satır oluşturmaz
	again, err := GetSettings(db)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)

	var count int64
	db.Model(&models.GlobalSettings{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func yearsAsc(s *models.GlobalSettings) []int {
	years := s.Years()
	for i, j := 0, len(years)-1; i < j; i, j = i+1, j-1 {
		years[i], years[j] = years[j], years[i]
	}
	return years
}

func TestGetSettingsPreservesExistingRow(t *testing.T) {
	db := newDB(t)

	existing := models.GlobalSettings{ID: models.SettingsID}
	existing.SetYears([]int{2020, 2021})
	require.NoError(t, db.Create(&existing).Error)

	settings, err := GetSettings(db)
	require.NoError(t, err)
	assert.True(t, settings.HasYear(2020))
	assert.False(t, settings.HasYear(2027))
}
