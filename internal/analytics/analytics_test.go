package analytics

import (
	"testing"

	"sps-backend/internal/models"
	"sps-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{
			Name: "XE AD6-1250A",
			YearData: []models.YearData{
				{Year: 2023, KD: testutil.Float(0.50), DT: testutil.Float(100), UT: testutil.Float(80), NVA: testutil.Float(20)},
				{Year: 2024, KD: testutil.Float(0.60), DT: testutil.Float(90), UT: testutil.Float(85), NVA: testutil.Float(15)},
			},
		},
		{
			Name: "NL GL6-1250A",
			YearData: []models.YearData{
				{Year: 2023, KD: testutil.Float(0.70), DT: testutil.Float(120), UT: testutil.Float(90), NVA: testutil.Float(30)},
				{Year: 2024, KD: nil, DT: testutil.Float(110), UT: testutil.Float(95), NVA: testutil.Float(25)},
			},
		},
	}
}

func TestAverageByYearSkipsNulls(t *testing.T) {
	products := sampleProducts()

	assert.InDelta(t, 0.60, AverageByYear(products, "kd", 2023), 1e-9)
	// 2024'te tek geçerli KD var, null ortalamaya katılmaz
	assert.InDelta(t, 0.60, AverageByYear(products, "kd", 2024), 1e-9)
	assert.Zero(t, AverageByYear(products, "kd", 2030))
}

func TestMetricTrendCoversAllYearsSorted(t *testing.T) {
	points := MetricTrend(sampleProducts(), "dt")
	require.Len(t, points, 2)
	assert.Equal(t, 2023, points[0].Year)
	assert.Equal(t, 2024, points[1].Year)
	assert.InDelta(t, 110.0, points[0].Value, 1e-9)
	assert.InDelta(t, 100.0, points[1].Value, 1e-9)
}

func TestCompareYearOverYear(t *testing.T) {
	products := append(sampleProducts(), models.Product{
		Name: "Veri Yok",
		YearData: []models.YearData{
			{Year: 2022, KD: testutil.Float(0.30)},
		},
	})

	items := CompareYearOverYear(products, "kd", 2024, 2023)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "XE AD6-1250A", first.Name)
	assert.InDelta(t, 0.60, first.Current, 1e-9)
	assert.InDelta(t, 0.50, first.Previous, 1e-9)
	assert.InDelta(t, 0.10, first.Change, 1e-9)
	assert.InDelta(t, 20.0, first.ChangePercent, 1e-9)

	// Güncel yıl değeri null: sıfır kabul edilir, ürün yine listelenir
	second := items[1]
	assert.Equal(t, "NL GL6-1250A", second.Name)
	assert.Zero(t, second.Current)
	assert.InDelta(t, 0.70, second.Previous, 1e-9)
	assert.InDelta(t, -100.0, second.ChangePercent, 1e-9)
}

func TestBreakdownForYear(t *testing.T) {
	b := BreakdownForYear(sampleProducts(), 2023)
	assert.Equal(t, 2023, b.Year)
	assert.InDelta(t, 110.0, b.DT, 1e-9)
	assert.InDelta(t, 85.0, b.UT, 1e-9)
	assert.InDelta(t, 25.0, b.NVA, 1e-9)
	assert.InDelta(t, 220.0, b.Total, 1e-9)

	empty := BreakdownForYear(sampleProducts(), 2030)
	assert.Zero(t, empty.Total)
}

func TestTopProducts(t *testing.T) {
	products := append(sampleProducts(), models.Product{
		Name: "Sıfır Değer",
		YearData: []models.YearData{
			{Year: 2023, KD: testutil.Float(0)},
		},
	})

	top := TopProducts(products, "kd", 2023, 10, false)
	require.Len(t, top, 2)
	assert.Equal(t, "NL GL6-1250A", top[0].Name)
	assert.Equal(t, "XE AD6-1250A", top[1].Name)

	asc := TopProducts(products, "kd", 2023, 1, true)
	require.Len(t, asc, 1)
	assert.Equal(t, "XE AD6-1250A", asc[0].Name)
}

func TestValidMetric(t *testing.T) {
	assert.True(t, ValidMetric("kd"))
	assert.True(t, ValidMetric("otr"))
	assert.False(t, ValidMetric("tsr"))
	assert.False(t, ValidMetric(""))
}
