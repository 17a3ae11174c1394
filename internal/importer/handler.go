package importer

import (
	"fmt"
	"io"
	"strings"

	"sps-backend/internal/auth"
	"sps-backend/internal/config"
	"sps-backend/internal/database"
	"sps-backend/internal/metrics"
	"sps-backend/internal/models"
	"sps-backend/internal/permissions"
	"sps-backend/internal/yeardata"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BulkImportRequest struct {
	Year   int   `json:"year"`
	LineID *uint `json:"lineId"`
	Data   []Row `json:"data"` // Önceden parse edilmiş satırlar
	CSV    string `json:"csv"` // Ya da ham CSV metni
}

type BulkImportResult struct {
	Message string   `json:"message"`
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// ImportRows: satırları (productId, year) anahtarıyla upsert eder.
// Toplu içe aktarma kısmi başarıya toleranslıdır: bozuk bir satır
// partiyi asla iptal etmez, satır bazında hata listesine yazılır.
func ImportRows(db *gorm.DB, year int, lineID *uint, rows []Row) BulkImportResult {
	result := BulkImportResult{Message: "İçe aktarma tamamlandı"}

	for i, row := range rows {
		rowNo := i + 1
		sanitizeRow(&row)

		if row.ProductName == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: Geçersiz ürün adı", rowNo))
			continue
		}

		// Ürünü birebir ad eşleşmesiyle bul
		var product models.Product
		err := db.Where("name = ?", row.ProductName).First(&product).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: Veritabanı hatası", rowNo))
				continue
			}
			// Ürün yok: hedef hat verildiyse oluştur, verilmediyse satır başarısız
			if lineID == nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Satır %d: Ürün %q bulunamadı ve oluşturulacak hat belirtilmedi", rowNo, row.ProductName))
				continue
			}
			product = models.Product{Name: row.ProductName, LineID: *lineID}
			if err := db.Create(&product).Error; err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Satır %d: Ürün %q oluşturulamadı", rowNo, row.ProductName))
				continue
			}
		}

		_, err = yeardata.Upsert(db, yeardata.UpsertRequest{
			ProductID: product.ID,
			Year:      year,
			DT:        row.DT, UT: row.UT, NVA: row.NVA,
			KD: row.KD, KE: row.KE, KER: row.KER, KSR: row.KSR,
			OTR: row.OTR, TSR: row.TSR,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Satır %d: Veritabanı hatası", rowNo))
			continue
		}

		result.Success++
	}

	result.Failed = len(result.Errors)
	return result
}

// sanitizeRow: JSON yoluyla gelen (CSV parse'ından geçmemiş) satırlarda
// da aynı sayısal sınırlar geçerlidir: geçersiz değer null'a düşer.
func sanitizeRow(row *Row) {
	row.ProductName = cleanName(row.ProductName)
	for _, v := range []**float64{&row.DT, &row.UT, &row.NVA, &row.KD, &row.KE, &row.KER, &row.KSR, &row.OTR} {
		if *v != nil && !metrics.ValidNumber(**v) {
			*v = nil
		}
	}
	if row.TSR != nil {
		row.TSR = cleanTSR(*row.TSR)
	}
}

// POST /api/year-data/bulk
// Gövde JSON ({year, lineId, data[]} veya {year, lineId, csv}) ya da
// multipart "file" alanında ham CSV olabilir.
func BulkImportHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BulkImportRequest

		if fileHeader, err := c.FormFile("file"); err == nil {
			if fileHeader.Size > MaxTextSize {
				return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Dosya çok büyük (en fazla 10MB)")
			}
			f, err := fileHeader.Open()
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Dosya açılamadı")
			}
			defer f.Close()
			raw, err := io.ReadAll(io.LimitReader(f, MaxTextSize+1))
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Dosya okunamadı")
			}
			body.CSV = string(raw)
			body.Year = c.QueryInt("year")
			if lid := c.QueryInt("lineId"); lid > 0 {
				u := uint(lid)
				body.LineID = &u
			}
		} else if strings.HasPrefix(c.Get(fiber.HeaderContentType), "text/csv") {
			body.CSV = string(c.Body())
			body.Year = c.QueryInt("year")
			if lid := c.QueryInt("lineId"); lid > 0 {
				u := uint(lid)
				body.LineID = &u
			}
		} else if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		settings, err := database.GetSettings(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar okunamadı")
		}
		if !settings.HasYear(body.Year) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yıl")
		}

		rows := body.Data
		if len(rows) == 0 && body.CSV != "" {
			// BOM'lu dosyalar Excel'den gelir
			text := strings.TrimPrefix(body.CSV, "\uFEFF")
			rows, err = ParseCSV(text)
			if err != nil {
				if err == ErrTooManyRows {
					return fiber.NewError(fiber.StatusRequestEntityTooLarge, "En fazla 100 satır içe aktarılabilir")
				}
				return fiber.NewError(fiber.StatusRequestEntityTooLarge, "CSV içeriği çok büyük")
			}
		}
		if len(rows) > MaxRows {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "En fazla 100 satır içe aktarılabilir")
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "İçe aktarılacak veri bulunamadı")
		}

		// Hedef hat verildiyse yazma yetkisi o hat üzerinden denetlenir
		userID, _ := auth.UserIDFromContext(c)
		role, _ := auth.RoleFromContext(c)
		if body.LineID != nil {
			ok, err := permissions.CanAccessLine(database.DB, cfg.LineReadPolicy, userID, role, *body.LineID, permissions.IntentWrite)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Yetki kontrolü yapılamadı")
			}
			if !ok {
				return fiber.NewError(fiber.StatusForbidden, "Bu satıra erişim yetkiniz yok")
			}
		} else if !role.IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
		}

		result := ImportRows(database.DB, body.Year, body.LineID, rows)
		return c.JSON(result)
	}
}
