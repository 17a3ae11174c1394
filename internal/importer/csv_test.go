package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "productName;dt;ut;nva;kd;ke;ker;ksr;otr;tsr"

func TestParseCSVWellFormed(t *testing.T) {
	text := csvHeader + "\n" +
		"XE AD6-1250A;1308.4;937.45;370.95;0.716;0.733;0.783;0.783;1669.14;REF-1\r\n" +
		"NL GL6-1250A;1345.72;975.36;370.36;0.725;;;;;\n"

	rows, err := ParseCSV(text)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "XE AD6-1250A", rows[0].ProductName)
	require.NotNil(t, rows[0].DT)
	assert.InDelta(t, 1308.4, *rows[0].DT, 1e-9)
	require.NotNil(t, rows[0].TSR)
	assert.Equal(t, "REF-1", *rows[0].TSR)

	// Boş hücreler null kalır
	assert.Nil(t, rows[1].KE)
	assert.Nil(t, rows[1].OTR)
	assert.Nil(t, rows[1].TSR)
}

func TestParseCSVInvalidNumberBecomesNull(t *testing.T) {
	text := csvHeader + "\n" +
		"Ürün A;abc;937.45;370.95;0.716;0.733;0.783;0.783;99999999999;#DIV/0!\n"

	rows, err := ParseCSV(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Geçersiz hücre satırı düşürmez, alan null olur
	assert.Nil(t, rows[0].DT)
	require.NotNil(t, rows[0].UT)

	// 1e10 üstü değerler de null'a düşer
	assert.Nil(t, rows[0].OTR)

	// TSR serbest metindir, kalıntı olduğu gibi taşınır
	require.NotNil(t, rows[0].TSR)
	assert.Equal(t, "#DIV/0!", *rows[0].TSR)
}

func TestParseCSVShortRowSkipped(t *testing.T) {
	text := csvHeader + "\n" +
		"Eksik Satır;1;2;3\n" +
		"Tam Satır;1;2;3;4;5;6;7;8;x\n"

	rows, err := ParseCSV(text)
	require.NoError(t, err)

	// 10'dan az kolonlu satır sessizce atlanır, sayıma girmez
	require.Len(t, rows, 1)
	assert.Equal(t, "Tam Satır", rows[0].ProductName)
}

func TestParseCSVRowLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString(csvHeader + "\n")
	for i := 0; i <= MaxRows; i++ {
		b.WriteString("Ürün;1;2;3;4;5;6;7;8;x\n")
	}

	_, err := ParseCSV(b.String())
	assert.ErrorIs(t, err, ErrTooManyRows)
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "XE AD6-1250A", cleanName(`  "XE AD6-1250A"  `))
	assert.Len(t, cleanName(strings.Repeat("a", 300)), maxNameLen)
}
