package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestComputeDerived(t *testing.T) {
	d := Compute(f(50), f(40), f(10))

	require.NotNil(t, d.OTR)
	require.NotNil(t, d.KE)
	require.NotNil(t, d.KER)
	require.NotNil(t, d.KSR)

	assert.InDelta(t, 100.0, *d.OTR, 1e-9)
	assert.InDelta(t, 0.40, *d.KE, 1e-9)
	assert.InDelta(t, 1.25, *d.KER, 1e-9)
	assert.InDelta(t, 2.00, *d.KSR, 1e-9)
	assert.Nil(t, d.TSRDisplay)
}

func TestComputeDivisionByZero(t *testing.T) {
	d := Compute(f(0), f(0), f(0))

	require.NotNil(t, d.OTR)
	assert.Zero(t, *d.OTR)

	// Payda sıfır: oranlar hesaplanmaz, gösterim kalıntısı işaretlenir
	assert.Nil(t, d.KE)
	assert.Nil(t, d.KER)
	assert.Nil(t, d.KSR)
	require.NotNil(t, d.TSRDisplay)
	assert.Equal(t, DivZeroSentinel, *d.TSRDisplay)
}

func TestComputeMissingInputs(t *testing.T) {
	// NVA yoksa OTR ve OTR'a bağlı oranlar hesaplanamaz
	d := Compute(f(50), f(40), nil)
	assert.Nil(t, d.OTR)
	assert.Nil(t, d.KE)
	assert.Nil(t, d.KSR)
	require.NotNil(t, d.KER)
	assert.InDelta(t, 1.25, *d.KER, 1e-9)

	// Hiç girdi yoksa hiç çıktı yok
	empty := Compute(nil, nil, nil)
	assert.Nil(t, empty.OTR)
	assert.Nil(t, empty.KE)
	assert.Nil(t, empty.KER)
	assert.Nil(t, empty.KSR)
	assert.Nil(t, empty.TSRDisplay)
}

func TestValidNumber(t *testing.T) {
	assert.True(t, ValidNumber(0))
	assert.True(t, ValidNumber(1519.13))
	assert.True(t, ValidNumber(-MaxMagnitude))
	assert.True(t, ValidNumber(MaxMagnitude))

	assert.False(t, ValidNumber(math.NaN()))
	assert.False(t, ValidNumber(math.Inf(1)))
	assert.False(t, ValidNumber(math.Inf(-1)))
	assert.False(t, ValidNumber(MaxMagnitude*1.01))
}
