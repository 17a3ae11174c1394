package importer

import (
	"math"
	"testing"

	"sps-backend/internal/models"
	"sps-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportRowsCreatesProductsOnTargetLine(t *testing.T) {
	db := testutil.NewDB(t)

	line := models.Line{Name: "F400", Slug: "f400"}
	require.NoError(t, db.Create(&line).Error)

	rows := []Row{
		{ProductName: "XE AD6-1250A", DT: testutil.Float(50), UT: testutil.Float(40), NVA: testutil.Float(10)},
		{ProductName: "NL GL6-1250A", DT: testutil.Float(30), UT: testutil.Float(20), NVA: testutil.Float(5)},
	}

	result := ImportRows(db, 2024, &line.ID, rows)
	assert.Equal(t, 2, result.Success)
	assert.Zero(t, result.Failed)

	var count int64
	db.Model(&models.Product{}).Where("line_id = ?", line.ID).Count(&count)
	assert.EqualValues(t, 2, count)

	// Türetilen alanlar upsert sırasında doldurulur
	var p models.Product
	require.NoError(t, db.Where("name = ?", "XE AD6-1250A").First(&p).Error)
	var yd models.YearData
	require.NoError(t, db.Where("product_id = ? AND year = ?", p.ID, 2024).First(&yd).Error)
	require.NotNil(t, yd.OTR)
	assert.InDelta(t, 100.0, *yd.OTR, 1e-9)
}

func TestImportRowsWithoutLineFailsUnknownProducts(t *testing.T) {
	db := testutil.NewDB(t)

	line := models.Line{Name: "F400", Slug: "f400"}
	require.NoError(t, db.Create(&line).Error)
	existing := models.Product{Name: "Mevcut Ürün", LineID: line.ID}
	require.NoError(t, db.Create(&existing).Error)

	rows := []Row{
		{ProductName: "Mevcut Ürün", DT: testutil.Float(10), UT: testutil.Float(5), NVA: testutil.Float(1)},
		{ProductName: "Bilinmeyen Ürün", DT: testutil.Float(10)},
	}

	result := ImportRows(db, 2024, nil, rows)
	assert.Equal(t, 1, result.Success)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Satır 2")

	// Başarısız satır ürün oluşturmaz
	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestImportRowsUpsertsByProductAndYear(t *testing.T) {
	db := testutil.NewDB(t)

	line := models.Line{Name: "F400", Slug: "f400"}
	require.NoError(t, db.Create(&line).Error)

	first := []Row{{ProductName: "XE AD6-1250A", DT: testutil.Float(10), UT: testutil.Float(5), NVA: testutil.Float(1)}}
	second := []Row{{ProductName: "XE AD6-1250A", DT: testutil.Float(99), UT: testutil.Float(5), NVA: testutil.Float(1)}}

	require.Equal(t, 1, ImportRows(db, 2024, &line.ID, first).Success)
	require.Equal(t, 1, ImportRows(db, 2024, &line.ID, second).Success)

	var count int64
	db.Model(&models.YearData{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var yd models.YearData
	require.NoError(t, db.First(&yd).Error)
	require.NotNil(t, yd.DT)
	assert.InDelta(t, 99.0, *yd.DT, 1e-9)
}

func TestImportRowsSanitizesJSONInput(t *testing.T) {
	db := testutil.NewDB(t)

	line := models.Line{Name: "F400", Slug: "f400"}
	require.NoError(t, db.Create(&line).Error)

	// JSON yolu CSV parse'ından geçmez ama aynı sınırlar uygulanır
	rows := []Row{{
		ProductName: `"Tırnaklı Ürün"`,
		DT:          testutil.Float(math.NaN()),
		UT:          testutil.Float(1e11),
		NVA:         testutil.Float(3),
	}}

	result := ImportRows(db, 2024, &line.ID, rows)
	require.Equal(t, 1, result.Success)

	var p models.Product
	require.NoError(t, db.Where("name = ?", "Tırnaklı Ürün").First(&p).Error)

	var yd models.YearData
	require.NoError(t, db.Where("product_id = ?", p.ID).First(&yd).Error)
	assert.Nil(t, yd.DT)
	assert.Nil(t, yd.UT)
	require.NotNil(t, yd.NVA)
}
