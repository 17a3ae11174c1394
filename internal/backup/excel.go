package backup

import (
	"fmt"
	"time"

	"sps-backend/internal/database"
	"sps-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const (
	linesSheet    = "Lines"
	productsSheet = "Products & Year Data"
)

// percentCell: 0-1 aralığındaki oranı okunabilirlik için 100 ile
// çarpılmış string'e çevirir, null değerler N/A olur.
func percentCell(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v*100)
}

func numberCell(v *float64) any {
	if v == nil {
		return "N/A"
	}
	return *v
}

// BuildWorkbook: iki sayfalık yedek dosyası üretir. İlk sayfa hatlar,
// ikincisi ürün×yıl satırlarına düzleştirilmiş metriklerdir.
func BuildWorkbook(lines []models.Line, products []models.Product, lineNames map[uint]string) (*excelize.File, error) {
	f := excelize.NewFile()

	// Varsayılan Sheet1 yerine adlı sayfalar
	f.SetSheetName("Sheet1", linesSheet)
	if _, err := f.NewSheet(productsSheet); err != nil {
		return nil, err
	}

	header := []any{"ID", "Name", "Slug", "Header Image", "Created At"}
	if err := f.SetSheetRow(linesSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, l := range lines {
		img := "N/A"
		if l.HeaderImageURL != nil {
			img = *l.HeaderImageURL
		}
		row := []any{l.ID, l.Name, l.Slug, img, l.CreatedAt.Format("2006-01-02")}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(linesSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	pHeader := []any{"Product ID", "Product Name", "Line", "Year",
		"DT", "UT", "NVA", "KD (%)", "KE (%)", "KER (%)", "KSR (%)", "OT", "TSR"}
	if err := f.SetSheetRow(productsSheet, "A1", &pHeader); err != nil {
		return nil, err
	}

	rowNo := 2
	for _, p := range products {
		lineName := lineNames[p.LineID]
		if lineName == "" {
			lineName = "N/A"
		}
		for _, yd := range p.YearData {
			tsr := "N/A"
			if yd.TSR != nil {
				tsr = *yd.TSR
			}
			row := []any{
				p.ID, p.Name, lineName, yd.Year,
				numberCell(yd.DT), numberCell(yd.UT), numberCell(yd.NVA),
				percentCell(yd.KD), percentCell(yd.KE), percentCell(yd.KER), percentCell(yd.KSR),
				numberCell(yd.OTR), tsr,
			}
			cell := fmt.Sprintf("A%d", rowNo)
			if err := f.SetSheetRow(productsSheet, cell, &row); err != nil {
				return nil, err
			}
			rowNo++
		}
	}

	return f, nil
}

// GET /api/backup/excel — admin
func ExcelExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var lines []models.Line
		if err := database.DB.Order("name asc").Find(&lines).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hatlar okunamadı")
		}

		var products []models.Product
		if err := database.DB.Preload("YearData").Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler okunamadı")
		}

		lineNames := make(map[uint]string, len(lines))
		for _, l := range lines {
			lineNames[l.ID] = l.Name
		}

		f, err := BuildWorkbook(lines, products, lineNames)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası yazılamadı")
		}

		filename := fmt.Sprintf("sps-export-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}
