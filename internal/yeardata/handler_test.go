package yeardata

import (
	"testing"

	"sps-backend/internal/metrics"
	"sps-backend/internal/models"
	"sps-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProduct(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()
	line := models.Line{Name: "F400", Slug: "f400"}
	require.NoError(t, db.Create(&line).Error)
	p := models.Product{Name: "XE AD6-1250A", LineID: line.ID}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestUpsertIsIdempotentPerProductYear(t *testing.T) {
	db := testutil.NewDB(t)
	p := seedProduct(t, db)

	_, err := Upsert(db, UpsertRequest{
		ProductID: p.ID, Year: 2024,
		DT: testutil.Float(50), UT: testutil.Float(40), NVA: testutil.Float(10),
	})
	require.NoError(t, err)

	_, err = Upsert(db, UpsertRequest{
		ProductID: p.ID, Year: 2024,
		DT: testutil.Float(60), UT: testutil.Float(30), NVA: testutil.Float(10),
	})
	require.NoError(t, err)

	// Aynı (ürün, yıl) çifti için asla ikinci satır oluşmaz
	var count int64
	db.Model(&models.YearData{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var yd models.YearData
	require.NoError(t, db.First(&yd).Error)
	require.NotNil(t, yd.DT)
	assert.InDelta(t, 60.0, *yd.DT, 1e-9)
}

func TestUpsertFillsDerivedFields(t *testing.T) {
	db := testutil.NewDB(t)
	p := seedProduct(t, db)

	yd, err := Upsert(db, UpsertRequest{
		ProductID: p.ID, Year: 2024,
		DT: testutil.Float(50), UT: testutil.Float(40), NVA: testutil.Float(10),
		KD: testutil.Float(0.9),
	})
	require.NoError(t, err)

	require.NotNil(t, yd.OTR)
	assert.InDelta(t, 100.0, *yd.OTR, 1e-9)
	require.NotNil(t, yd.KE)
	assert.InDelta(t, 0.40, *yd.KE, 1e-9)
	require.NotNil(t, yd.KER)
	assert.InDelta(t, 1.25, *yd.KER, 1e-9)
	require.NotNil(t, yd.KSR)
	assert.InDelta(t, 2.00, *yd.KSR, 1e-9)

	// KD hiçbir zaman türetilmez, gönderilen değer korunur
	require.NotNil(t, yd.KD)
	assert.InDelta(t, 0.9, *yd.KD, 1e-9)
	assert.Nil(t, yd.TSR)
}

func TestUpsertSuppliedValuesWin(t *testing.T) {
	db := testutil.NewDB(t)
	p := seedProduct(t, db)

	// İçe aktarma yetkili kaynaktır: gönderilen OTR hesaplananı ezer
	yd, err := Upsert(db, UpsertRequest{
		ProductID: p.ID, Year: 2024,
		DT: testutil.Float(50), UT: testutil.Float(40), NVA: testutil.Float(10),
		OTR: testutil.Float(123.45),
	})
	require.NoError(t, err)

	require.NotNil(t, yd.OTR)
	assert.InDelta(t, 123.45, *yd.OTR, 1e-9)
}

func TestUpsertDivisionByZeroSentinel(t *testing.T) {
	db := testutil.NewDB(t)
	p := seedProduct(t, db)

	yd, err := Upsert(db, UpsertRequest{
		ProductID: p.ID, Year: 2024,
		DT: testutil.Float(0), UT: testutil.Float(0), NVA: testutil.Float(0),
	})
	require.NoError(t, err)

	assert.Nil(t, yd.KE)
	assert.Nil(t, yd.KER)
	assert.Nil(t, yd.KSR)
	require.NotNil(t, yd.TSR)
	assert.Equal(t, metrics.DivZeroSentinel, *yd.TSR)
}
