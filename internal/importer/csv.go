package importer

import (
	"errors"
	"strconv"
	"strings"

	"sps-backend/internal/metrics"
)

// CSV formatı (Excel uyumu için noktalı virgül ayraçlı):
// productName;dt;ut;nva;kd;ke;ker;ksr;otr;tsr
// İlk satır başlıktır ve atlanır.
const (
	MaxRows     = 100
	MaxTextSize = 10 * 1024 * 1024 // 10MB
	minColumns  = 10
	maxNameLen  = 255
)

var (
	ErrTooLarge    = errors.New("csv içeriği çok büyük")
	ErrTooManyRows = errors.New("csv en fazla 100 veri satırı içerebilir")
)

// Row: bir CSV satırından parse edilen değerler. Geçersiz sayısal
// hücreler satırı düşürmez, alan null kalır.
type Row struct {
	ProductName string   `json:"productName"`
	DT          *float64 `json:"dt"`
	UT          *float64 `json:"ut"`
	NVA         *float64 `json:"nva"`
	KD          *float64 `json:"kd"`
	KE          *float64 `json:"ke"`
	KER         *float64 `json:"ker"`
	KSR         *float64 `json:"ksr"`
	OTR         *float64 `json:"otr"`
	TSR         *string  `json:"tsr"`
}

// ParseCSV: ham CSV metnini satırlara çevirir. 10'dan az kolonu olan
// satırlar sessizce atlanır (başarı/başarısızlık sayımına girmez).
func ParseCSV(text string) ([]Row, error) {
	if len(text) > MaxTextSize {
		return nil, ErrTooLarge
	}

	lines := strings.Split(text, "\n")

	rows := make([]Row, 0)
	for i, line := range lines {
		if i == 0 {
			continue // başlık satırı
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(line, ";")
		if len(cols) < minColumns {
			continue
		}

		rows = append(rows, Row{
			ProductName: cleanName(cols[0]),
			DT:          parseNumber(cols[1]),
			UT:          parseNumber(cols[2]),
			NVA:         parseNumber(cols[3]),
			KD:          parseNumber(cols[4]),
			KE:          parseNumber(cols[5]),
			KER:         parseNumber(cols[6]),
			KSR:         parseNumber(cols[7]),
			OTR:         parseNumber(cols[8]),
			TSR:         cleanTSR(cols[9]),
		})

		if len(rows) > MaxRows {
			return nil, ErrTooManyRows
		}
	}

	return rows, nil
}

// cleanName: baştaki/sondaki boşlukları ve çevreleyen tırnakları atar,
// 255 karaktere kırpar. Tam CSV tırnak çözümlemesi yapılmaz; eski
// davranışla birebir uyum için sadece dış tırnaklar soyulur.
func cleanName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	if len(s) > maxNameLen {
		s = s[:maxNameLen]
	}
	return s
}

func cleanTSR(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if len(s) > maxNameLen {
		s = s[:maxNameLen]
	}
	return &s
}

// parseNumber: hücreyi bağımsız parse eder. Boş, geçersiz veya aşırı
// büyük değerler null olur, satırı düşürmez.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if !metrics.ValidNumber(v) {
		return nil
	}
	return &v
}
