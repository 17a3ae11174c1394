package settings

import (
	"log"

	"sps-backend/internal/audit"
	"sps-backend/internal/auth"
	"sps-backend/internal/database"
	"sps-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type YearRequest struct {
	Year int `json:"year"`
}

type HeaderRequest struct {
	HeaderImageURL *string `json:"headerImageUrl"`
}

// GET /api/settings/years — yıllar büyükten küçüğe sıralı döner.
// Ayar satırı yoksa varsayılan yıllarla tembel oluşturulur.
func ListYearsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := database.GetSettings(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yıllar okunamadı")
		}
		return c.JSON(s.Years())
	}
}

// POST /api/settings/years — admin
func AddYearHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body YearRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Year < 2000 || body.Year > 2100 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yıl")
		}

		s, err := database.GetSettings(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar okunamadı")
		}
		if s.HasYear(body.Year) {
			return fiber.NewError(fiber.StatusBadRequest, "Bu yıl zaten ekli")
		}

		years := append(s.Years(), body.Year)
		s.SetYears(years)
		if err := database.DB.Save(s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yıl eklenemedi")
		}

		writeAudit(c, models.AuditActionUpdate, "Yıl sekmesi eklendi")
		return c.JSON(s.Years())
	}
}

// DELETE /api/settings/years — admin
func RemoveYearHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body YearRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Year == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Yıl zorunlu")
		}

		s, err := database.GetSettings(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar okunamadı")
		}

		years := make([]int, 0)
		for _, y := range s.Years() {
			if y != body.Year {
				years = append(years, y)
			}
		}
		s.SetYears(years)
		if err := database.DB.Save(s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yıl silinemedi")
		}

		writeAudit(c, models.AuditActionUpdate, "Yıl sekmesi kaldırıldı")
		return c.JSON(s.Years())
	}
}

// GET /api/settings/header
func GetHeaderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := database.GetSettings(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar okunamadı")
		}
		return c.JSON(fiber.Map{"headerImageUrl": s.HeaderImageURL})
	}
}

// PATCH /api/settings/header — admin
func UpdateHeaderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body HeaderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.HeaderImageURL != nil && len(*body.HeaderImageURL) > 1000 {
			return fiber.NewError(fiber.StatusBadRequest, "Görsel URL'i en fazla 1000 karakter olabilir")
		}

		s, err := database.GetSettings(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar okunamadı")
		}

		s.HeaderImageURL = body.HeaderImageURL
		if err := database.DB.Save(s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayar güncellenemedi")
		}

		writeAudit(c, models.AuditActionUpdate, "Varsayılan başlık görseli güncellendi")
		return c.JSON(fiber.Map{"headerImageUrl": s.HeaderImageURL})
	}
}

func writeAudit(c *fiber.Ctx, action models.AuditAction, desc string) {
	userID, _ := auth.UserIDFromContext(c)
	username, _ := auth.UsernameFromContext(c)
	if err := audit.WriteLog(audit.LogOptions{
		UserID: userID, Username: username,
		EntityType: "settings", EntityID: models.SettingsID,
		Action: action, Description: desc,
	}); err != nil {
		log.Println("Audit log yazılamadı:", err)
	}
}
