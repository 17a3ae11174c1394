package assistant

import (
	"fmt"
	"sort"
	"strings"

	"sps-backend/internal/database"
	"sps-backend/internal/models"

	"gorm.io/gorm"
)

// systemPrompt: asistanın kalıcı kimliği ve alan bilgisi. Asistan
// SALT OKUNURDUR; bağlam kurulurken yalnızca okuma sorgusu atılır.
const systemPrompt = `You are Intra Arc - an advanced thinking system developed for the SET SPS platform.

IMPORTANT: Always respond in Turkish (Türkçe) unless the user explicitly asks in another language.
Always introduce yourself as "Intra Arc" when asked who you are.

## About SET SPS:
SET SPS is a product management and SPS (Single Point of Success) analysis platform
that tracks performance metrics across years for multiple production lines.

## Key Performance Metrics:
- **OT (Overall Time)**: Total project time (DT + UT + NVA)
- **DT (Design Time)**: Design phase duration
- **UT (Useful Time)**: Productive working time
- **NVA (Non-Value Added)**: Wasted/non-productive time
- **KD**: Efficiency ratio (0-1), the primary efficiency percentage
- **KE, KER, KSR**: Extended performance indicators (UT/OT, DT/UT, OT/DT)
- **TSR**: Reference code, occasionally a legacy "#DIV/0!" marker

## SPS Analysis:
SPS methodology identifies bottlenecks through waterfall visualization:
start with OT, break down to DT, extract UT, isolate NVA. This reveals
optimization opportunities and efficiency gaps.

Be professional, insightful, and data-driven. Provide actionable
recommendations when analyzing metrics.
ALWAYS RESPOND IN TURKISH.`

const greeting = "Sistemdeki tüm verilere erişimim var. SET SPS hakkında detaylı analizler ve öneriler sunabilirim. Nasıl yardımcı olabilirim?"

// BuildContext: mevcut ürün/ayar durumunun metin özetini üretir.
// lineID verilirse tek hatla sınırlanır. Veri okunamazsa sohbet
// düşmez, özet yerine uyarı metni döner.
func BuildContext(db *gorm.DB, lineID *uint) string {
	var sb strings.Builder

	lineName := "All Lines"
	q := db.Preload("YearData")
	if lineID != nil {
		q = q.Where("line_id = ?", *lineID)
		var line models.Line
		if err := db.First(&line, *lineID).Error; err == nil {
			lineName = line.Name
		}
	}

	var products []models.Product
	if err := q.Order("name asc").Find(&products).Error; err != nil {
		return "\n\n## CURRENT SYSTEM DATA: [Unable to retrieve data]\n"
	}

	fmt.Fprintf(&sb, "\n\n## CURRENT SYSTEM DATA (Context: %s):\n\n", lineName)
	fmt.Fprintf(&sb, "### Products in %s (%d total):\n", lineName, len(products))

	for _, p := range products {
		fmt.Fprintf(&sb, "\n**%s** (ID: %d)\n", p.Name, p.ID)

		years := make([]int, 0, len(p.YearData))
		for _, yd := range p.YearData {
			years = append(years, yd.Year)
		}
		sort.Ints(years)
		fmt.Fprintf(&sb, "  - Active in years: %s\n", joinYears(years))

		if latest := latestYearData(p.YearData); latest != nil {
			fmt.Fprintf(&sb, "  - Latest data (%d):\n", latest.Year)
			fmt.Fprintf(&sb, "    * OT: %s, DT: %s, UT: %s, NVA: %s\n",
				numOrNA(latest.OTR), numOrNA(latest.DT), numOrNA(latest.UT), numOrNA(latest.NVA))
			fmt.Fprintf(&sb, "    * KD: %s\n", pctOrNA(latest.KD))
		}
	}

	sb.WriteString("\n### System Configuration:\n")
	settings, err := database.GetSettings(db)
	if err == nil {
		header := "Default"
		if settings.HeaderImageURL != nil {
			header = *settings.HeaderImageURL
		}
		fmt.Fprintf(&sb, "- Header Image: %s\n", header)
		fmt.Fprintf(&sb, "- Years Supported: %s\n", joinYears(settings.Years()))
	}

	return sb.String()
}

func latestYearData(data []models.YearData) *models.YearData {
	var latest *models.YearData
	for i := range data {
		if latest == nil || data[i].Year > latest.Year {
			latest = &data[i]
		}
	}
	return latest
}

func joinYears(years []int) string {
	parts := make([]string, 0, len(years))
	for _, y := range years {
		parts = append(parts, fmt.Sprintf("%d", y))
	}
	return strings.Join(parts, ", ")
}

func numOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func pctOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}
