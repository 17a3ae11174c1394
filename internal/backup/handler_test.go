package backup

import (
	"testing"

	"sps-backend/internal/models"
	"sps-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSource(t *testing.T, db *gorm.DB) {
	t.Helper()

	line := models.Line{Name: "F400", Slug: "f400", HeaderImageURL: testutil.Str("/F400i.png")}
	require.NoError(t, db.Create(&line).Error)

	p := models.Product{Name: "XE AD6-1250A", LineID: line.ID}
	require.NoError(t, db.Create(&p).Error)

	require.NoError(t, db.Create(&models.YearData{
		ProductID: p.ID, Year: 2024,
		DT: testutil.Float(50), UT: testutil.Float(40), NVA: testutil.Float(10),
		TSR: testutil.Str("#DIV/0!"),
	}).Error)

	u := models.User{Username: "operator", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, db.Create(&models.UserLine{UserID: u.ID, LineID: line.ID}).Error)
}

func TestExportImportRoundtrip(t *testing.T) {
	source := testutil.NewDB(t)
	seedSource(t, source)

	snap, err := Export(source)
	require.NoError(t, err)
	assert.Len(t, snap.Lines, 1)
	assert.Len(t, snap.Products, 1)
	assert.Len(t, snap.YearData, 1)
	assert.Len(t, snap.UserLines, 1)

	target := testutil.NewDB(t)
	require.NoError(t, Import(target, snap))

	restored, err := Export(target)
	require.NoError(t, err)
	require.Len(t, restored.Lines, 1)
	require.Len(t, restored.Products, 1)
	require.Len(t, restored.YearData, 1)
	require.Len(t, restored.UserLines, 1)

	assert.Equal(t, snap.Lines[0].ID, restored.Lines[0].ID)
	assert.Equal(t, "f400", restored.Lines[0].Slug)
	assert.Equal(t, snap.Products[0].ID, restored.Products[0].ID)
	require.NotNil(t, restored.YearData[0].DT)
	assert.InDelta(t, 50.0, *restored.YearData[0].DT, 1e-9)
	require.NotNil(t, restored.YearData[0].TSR)
	assert.Equal(t, "#DIV/0!", *restored.YearData[0].TSR)
}

func TestImportReplacesExistingData(t *testing.T) {
	db := testutil.NewDB(t)

	stale := models.Line{Name: "Eski Hat", Slug: "eski-hat"}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Eski Ürün", LineID: stale.ID}).Error)

	snap := &Snapshot{
		Lines:    []models.Line{{ID: 10, Name: "Yeni Hat", Slug: "yeni-hat"}},
		Products: []models.Product{{ID: 20, Name: "Yeni Ürün", LineID: 10}},
	}
	require.NoError(t, Import(db, snap))

	var lines []models.Line
	require.NoError(t, db.Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, "yeni-hat", lines[0].Slug)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestImportDoesNotTouchUsers(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.Create(&models.User{Username: "admin", PasswordHash: "x", Role: models.RoleAdmin}).Error)

	require.NoError(t, Import(db, &Snapshot{}))

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestImportIsAtomic(t *testing.T) {
	db := testutil.NewDB(t)
	seedSource(t, db)

	// Tekrarlanan slug unique index'e takılır, hiçbir değişiklik kalmamalı
	bad := &Snapshot{Lines: []models.Line{
		{Name: "A", Slug: "ayni"},
		{Name: "B", Slug: "ayni"},
	}}
	require.Error(t, Import(db, bad))

	var lines []models.Line
	require.NoError(t, db.Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, "f400", lines[0].Slug)
}
