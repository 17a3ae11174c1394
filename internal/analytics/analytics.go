// Package analytics, grafik bileşenlerinin tükettiği hazır serileri
// üretir. Hesaplar saf fonksiyonlardır, veri erişimi handler katmanında.
package analytics

import (
	"sort"

	"sps-backend/internal/models"
)

type TrendPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

type Comparison struct {
	Name          string  `json:"name"`
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

type TimeBreakdown struct {
	Year  int     `json:"year"`
	DT    float64 `json:"dt"`
	UT    float64 `json:"ut"`
	NVA   float64 `json:"nva"`
	Total float64 `json:"total"`
}

type RankedProduct struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MetricValue: yıl verisinden istenen metriği seçer. Bilinmeyen metrik
// adları nil döner, handler bunu 400'e çevirir.
func MetricValue(yd models.YearData, metric string) *float64 {
	switch metric {
	case "dt":
		return yd.DT
	case "ut":
		return yd.UT
	case "nva":
		return yd.NVA
	case "kd":
		return yd.KD
	case "ke":
		return yd.KE
	case "ker":
		return yd.KER
	case "ksr":
		return yd.KSR
	case "otr":
		return yd.OTR
	default:
		return nil
	}
}

// ValidMetric: API'den gelen metrik adı doğrulaması.
func ValidMetric(metric string) bool {
	switch metric {
	case "dt", "ut", "nva", "kd", "ke", "ker", "ksr", "otr":
		return true
	}
	return false
}

func yearsOf(products []models.Product) []int {
	seen := map[int]bool{}
	years := make([]int, 0)
	for _, p := range products {
		for _, yd := range p.YearData {
			if !seen[yd.Year] {
				seen[yd.Year] = true
				years = append(years, yd.Year)
			}
		}
	}
	sort.Ints(years)
	return years
}

// AverageByYear: bir yıl için metrik ortalaması. Null değerler ortalamaya
// katılmaz; hiç değer yoksa 0 döner.
func AverageByYear(products []models.Product, metric string, year int) float64 {
	var sum float64
	var n int
	for _, p := range products {
		for _, yd := range p.YearData {
			if yd.Year != year {
				continue
			}
			if v := MetricValue(yd, metric); v != nil {
				sum += *v
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// MetricTrend: tüm yıllar için metrik ortalaması serisi.
func MetricTrend(products []models.Product, metric string) []TrendPoint {
	years := yearsOf(products)
	points := make([]TrendPoint, 0, len(years))
	for _, y := range years {
		points = append(points, TrendPoint{Year: y, Value: AverageByYear(products, metric, y)})
	}
	return points
}

// CompareYearOverYear: ürün bazında iki yıl karşılaştırması. Her iki
// yılda da değeri olmayan ürünler listeden düşer.
func CompareYearOverYear(products []models.Product, metric string, currentYear, previousYear int) []Comparison {
	result := make([]Comparison, 0, len(products))
	for _, p := range products {
		var current, previous float64
		for _, yd := range p.YearData {
			v := MetricValue(yd, metric)
			if v == nil {
				continue
			}
			switch yd.Year {
			case currentYear:
				current = *v
			case previousYear:
				previous = *v
			}
		}
		if current == 0 && previous == 0 {
			continue
		}

		change := current - previous
		var changePercent float64
		if previous != 0 {
			changePercent = change / previous * 100
		}
		result = append(result, Comparison{
			Name:          p.Name,
			Current:       current,
			Previous:      previous,
			Change:        change,
			ChangePercent: changePercent,
		})
	}
	return result
}

// BreakdownForYear: bir yılın ortalama DT/UT/NVA dağılımı (şelale
// grafiği girdisi).
func BreakdownForYear(products []models.Product, year int) TimeBreakdown {
	var dtSum, utSum, nvaSum float64
	var n int
	for _, p := range products {
		for _, yd := range p.YearData {
			if yd.Year != year {
				continue
			}
			n++
			if yd.DT != nil {
				dtSum += *yd.DT
			}
			if yd.UT != nil {
				utSum += *yd.UT
			}
			if yd.NVA != nil {
				nvaSum += *yd.NVA
			}
		}
	}
	if n == 0 {
		return TimeBreakdown{Year: year}
	}
	avgDT := dtSum / float64(n)
	avgUT := utSum / float64(n)
	avgNVA := nvaSum / float64(n)
	return TimeBreakdown{
		Year: year, DT: avgDT, UT: avgUT, NVA: avgNVA,
		Total: avgDT + avgUT + avgNVA,
	}
}

// BreakdownTrend: tüm yıllar için dağılım serisi.
func BreakdownTrend(products []models.Product) []TimeBreakdown {
	years := yearsOf(products)
	result := make([]TimeBreakdown, 0, len(years))
	for _, y := range years {
		result = append(result, BreakdownForYear(products, y))
	}
	return result
}

// TopProducts: bir yılda metriğe göre ilk N ürün. Sıfır değerli ürünler
// listelenmez.
func TopProducts(products []models.Product, metric string, year, count int, ascending bool) []RankedProduct {
	ranked := make([]RankedProduct, 0, len(products))
	for _, p := range products {
		for _, yd := range p.YearData {
			if yd.Year != year {
				continue
			}
			if v := MetricValue(yd, metric); v != nil && *v != 0 {
				ranked = append(ranked, RankedProduct{Name: p.Name, Value: *v})
			}
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ascending {
			return ranked[i].Value < ranked[j].Value
		}
		return ranked[i].Value > ranked[j].Value
	})

	if count > 0 && len(ranked) > count {
		ranked = ranked[:count]
	}
	return ranked
}
