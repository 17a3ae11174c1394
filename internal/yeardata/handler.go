package yeardata

import (
	"sps-backend/internal/auth"
	"sps-backend/internal/config"
	"sps-backend/internal/database"
	"sps-backend/internal/metrics"
	"sps-backend/internal/models"
	"sps-backend/internal/permissions"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UpsertRequest struct {
	ProductID uint     `json:"productId"`
	Year      int      `json:"year"`
	DT        *float64 `json:"dt"`
	UT        *float64 `json:"ut"`
	NVA       *float64 `json:"nva"`
	KD        *float64 `json:"kd"`
	KE        *float64 `json:"ke"`
	KER       *float64 `json:"ker"`
	KSR       *float64 `json:"ksr"`
	OTR       *float64 `json:"otr"`
	TSR       *string  `json:"tsr"`
}

// Upsert: (productId, year) anahtarıyla yıl verisini yazar. Kayıt varsa
// günceller, yoksa oluşturur; aynı çift için asla ikinci satır oluşmaz.
// Eksik türetilen alanlar metrics.Compute ile doldurulur, gönderilen
// değerler her zaman kazanır (içe aktarma yetkili kaynaktır).
func Upsert(db *gorm.DB, req UpsertRequest) (*models.YearData, error) {
	derived := metrics.Compute(req.DT, req.UT, req.NVA)
	if req.OTR == nil {
		req.OTR = derived.OTR
	}
	if req.KE == nil {
		req.KE = derived.KE
	}
	if req.KER == nil {
		req.KER = derived.KER
	}
	if req.KSR == nil {
		req.KSR = derived.KSR
	}
	if req.TSR == nil {
		req.TSR = derived.TSRDisplay
	}

	var yd models.YearData
	err := db.Where("product_id = ? AND year = ?", req.ProductID, req.Year).First(&yd).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		yd = models.YearData{ProductID: req.ProductID, Year: req.Year}
	}

	yd.DT, yd.UT, yd.NVA = req.DT, req.UT, req.NVA
	yd.KD, yd.KE, yd.KER, yd.KSR = req.KD, req.KE, req.KER, req.KSR
	yd.OTR, yd.TSR = req.OTR, req.TSR

	if err := db.Save(&yd).Error; err != nil {
		return nil, err
	}
	return &yd, nil
}

func validateNumbers(req *UpsertRequest) string {
	fields := map[string]*float64{
		"dt": req.DT, "ut": req.UT, "nva": req.NVA,
		"kd": req.KD, "ke": req.KE, "ker": req.KER,
		"ksr": req.KSR, "otr": req.OTR,
	}
	for name, v := range fields {
		if v != nil && !metrics.ValidNumber(*v) {
			return name
		}
	}
	return ""
}

// POST /api/year-data
func UpsertHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpsertRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün ID zorunlu")
		}
		if field := validateNumbers(&body); field != "" {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sayısal değer: "+field)
		}
		if body.TSR != nil && len(*body.TSR) > 255 {
			return fiber.NewError(fiber.StatusBadRequest, "TSR en fazla 255 karakter olabilir")
		}

		settings, err := database.GetSettings(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar okunamadı")
		}
		if !settings.HasYear(body.Year) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yıl")
		}

		var p models.Product
		if err := database.DB.First(&p, body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		userID, _ := auth.UserIDFromContext(c)
		role, _ := auth.RoleFromContext(c)

		ok, err := permissions.CanAccessLine(database.DB, cfg.LineReadPolicy, userID, role, p.LineID, permissions.IntentWrite)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yetki kontrolü yapılamadı")
		}
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Bu satıra erişim yetkiniz yok")
		}

		yd, err := Upsert(database.DB, body)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yıl verisi kaydedilemedi")
		}

		return c.JSON(yd)
	}
}

// DELETE /api/year-data?productId=5&year=2024 — ürünü o yıldan çıkarır
func DeleteHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID := c.QueryInt("productId")
		year := c.QueryInt("year")
		if productID < 1 || year < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "productId ve year zorunlu")
		}

		var p models.Product
		if err := database.DB.First(&p, productID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		userID, _ := auth.UserIDFromContext(c)
		role, _ := auth.RoleFromContext(c)

		ok, err := permissions.CanAccessLine(database.DB, cfg.LineReadPolicy, userID, role, p.LineID, permissions.IntentWrite)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yetki kontrolü yapılamadı")
		}
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Bu satıra erişim yetkiniz yok")
		}

		res := database.DB.Where("product_id = ? AND year = ?", productID, year).Delete(&models.YearData{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yıl verisi silinemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Yıl verisi bulunamadı")
		}

		return c.JSON(fiber.Map{"message": "Yıl verisi silindi"})
	}
}
