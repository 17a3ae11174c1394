package models

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// SettingsID: tek satırlık ayar kaydının sabit ID'si.
const SettingsID uint = 1

// GlobalSettings: tekil ayar satırı. İlk okumada tembel oluşturulur.
// AvailableYears, Postgres ve test ortamındaki sqlite'ta aynı şekilde
// çalışsın diye virgülle ayrılmış string olarak saklanır.
type GlobalSettings struct {
	ID             uint    `gorm:"primaryKey"`
	HeaderImageURL *string `gorm:"size:1000"`
	AvailableYears string  `gorm:"size:1000;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DefaultYears: ayar kaydı yokken kullanılacak yıl sekmeleri.
var DefaultYears = []int{2023, 2024, 2025, 2026, 2027}

// Years: saklanan listeyi parse eder, büyükten küçüğe sıralı döner.
func (s *GlobalSettings) Years() []int {
	years := make([]int, 0)
	for _, part := range strings.Split(s.AvailableYears, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if y, err := strconv.Atoi(part); err == nil {
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// SetYears: yıl listesini saklanacak forma çevirir.
func (s *GlobalSettings) SetYears(years []int) {
	parts := make([]string, 0, len(years))
	for _, y := range years {
		parts = append(parts, strconv.Itoa(y))
	}
	s.AvailableYears = strings.Join(parts, ",")
}

// HasYear: yıl izin listesinde mi?
func (s *GlobalSettings) HasYear(year int) bool {
	for _, y := range s.Years() {
		if y == year {
			return true
		}
	}
	return false
}
