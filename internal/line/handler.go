package line

import (
	"log"
	"strings"

	"sps-backend/internal/audit"
	"sps-backend/internal/auth"
	"sps-backend/internal/config"
	"sps-backend/internal/database"
	"sps-backend/internal/models"
	"sps-backend/internal/permissions"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LineResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	HeaderImageURL *string `json:"headerImageUrl"`
	CreatedAt      string  `json:"createdAt"`
}

type CreateLineRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type UpdateLineRequest struct {
	Name           *string `json:"name"`
	Slug           *string `json:"slug"`
	HeaderImageURL *string `json:"headerImageUrl"`
}

func toResponse(l models.Line) LineResponse {
	return LineResponse{
		ID:             l.ID,
		Name:           l.Name,
		Slug:           l.Slug,
		HeaderImageURL: l.HeaderImageURL,
		CreatedAt:      l.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/lines — kullanıcının erişebildiği hatlar
func ListLinesHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := auth.UserIDFromContext(c)
		role, ok := auth.RoleFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}

		lines, err := permissions.AccessibleLines(database.DB, cfg.LineReadPolicy, userID, role)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hatlar listelenemedi")
		}

		res := make([]LineResponse, 0, len(lines))
		for _, l := range lines {
			res = append(res, toResponse(l))
		}
		return c.JSON(res)
	}
}

// GET /api/lines/:id
func GetLineHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lineID, err := c.ParamsInt("id")
		if err != nil || lineID < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hat ID")
		}

		userID, _ := auth.UserIDFromContext(c)
		role, _ := auth.RoleFromContext(c)

		ok, err := permissions.CanAccessLine(database.DB, cfg.LineReadPolicy, userID, role, uint(lineID), permissions.IntentRead)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yetki kontrolü yapılamadı")
		}
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Bu satıra erişim yetkiniz yok")
		}

		var l models.Line
		if err := database.DB.First(&l, lineID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hat bulunamadı")
		}
		return c.JSON(toResponse(l))
	}
}

// POST /api/lines — sadece admin
func CreateLineHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLineRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Slug = strings.TrimSpace(body.Slug)
		if body.Name == "" || body.Slug == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Hat adı ve slug zorunlu")
		}
		if len(body.Name) > 255 || len(body.Slug) > 255 {
			return fiber.NewError(fiber.StatusBadRequest, "Hat adı ve slug en fazla 255 karakter olabilir")
		}

		var existing models.Line
		if err := database.DB.Where("slug = ?", body.Slug).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu slug zaten kullanılıyor")
		}

		l := models.Line{Name: body.Name, Slug: body.Slug}
		if err := database.DB.Create(&l).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hat oluşturulamadı")
		}

		userID, _ := auth.UserIDFromContext(c)
		username, _ := auth.UsernameFromContext(c)
		if err := audit.WriteLog(audit.LogOptions{
			UserID: userID, Username: username,
			EntityType: "line", EntityID: l.ID,
			Action:      models.AuditActionCreate,
			Description: "Hat oluşturuldu: " + l.Name,
			After:       l,
		}); err != nil {
			log.Println("Audit log yazılamadı:", err)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(l))
	}
}

// PATCH /api/lines/:id — başlık görselini yazma erişimi olan herkes,
// ad/slug alanlarını sadece admin değiştirebilir
func UpdateLineHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lineID, err := c.ParamsInt("id")
		if err != nil || lineID < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hat ID")
		}

		userID, _ := auth.UserIDFromContext(c)
		role, _ := auth.RoleFromContext(c)

		ok, err := permissions.CanAccessLine(database.DB, cfg.LineReadPolicy, userID, role, uint(lineID), permissions.IntentWrite)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yetki kontrolü yapılamadı")
		}
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Bu satıra erişim yetkiniz yok")
		}

		var body UpdateLineRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var l models.Line
		if err := database.DB.First(&l, lineID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hat bulunamadı")
		}

		updates := map[string]any{}
		if body.HeaderImageURL != nil {
			if len(*body.HeaderImageURL) > 1000 {
				return fiber.NewError(fiber.StatusBadRequest, "Görsel URL'i en fazla 1000 karakter olabilir")
			}
			updates["header_image_url"] = *body.HeaderImageURL
		}
		if role.IsAdmin() {
			if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
				updates["name"] = strings.TrimSpace(*body.Name)
			}
			if body.Slug != nil && strings.TrimSpace(*body.Slug) != "" {
				slug := strings.TrimSpace(*body.Slug)
				var existing models.Line
				if err := database.DB.Where("slug = ? AND id <> ?", slug, l.ID).First(&existing).Error; err == nil {
					return fiber.NewError(fiber.StatusBadRequest, "Bu slug zaten kullanılıyor")
				}
				updates["slug"] = slug
			}
		}

		if len(updates) > 0 {
			if err := database.DB.Model(&l).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Hat güncellenemedi")
			}
		}

		return c.JSON(toResponse(l))
	}
}

// DELETE /api/lines/:id — sadece admin. Hattın ürünleri, ürünlerin yıl
// verileri ve kullanıcı atamaları tek transaction içinde silinir; FK
// zorlaması olmayan ortamlarda da yetim kayıt kalmaz.
func DeleteLineHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lineID, err := c.ParamsInt("id")
		if err != nil || lineID < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hat ID")
		}

		var l models.Line
		if err := database.DB.First(&l, lineID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hat bulunamadı")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id IN (?)",
				tx.Model(&models.Product{}).Select("id").Where("line_id = ?", lineID),
			).Delete(&models.YearData{}).Error; err != nil {
				return err
			}
			if err := tx.Where("line_id = ?", lineID).Delete(&models.Product{}).Error; err != nil {
				return err
			}
			if err := tx.Where("line_id = ?", lineID).Delete(&models.UserLine{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Line{}, lineID).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hat silinemedi")
		}

		userID, _ := auth.UserIDFromContext(c)
		username, _ := auth.UsernameFromContext(c)
		if err := audit.WriteLog(audit.LogOptions{
			UserID: userID, Username: username,
			EntityType: "line", EntityID: l.ID,
			Action:      models.AuditActionDelete,
			Description: "Hat silindi: " + l.Name,
			Before:      l,
		}); err != nil {
			log.Println("Audit log yazılamadı:", err)
		}

		return c.JSON(fiber.Map{"message": "Hat silindi"})
	}
}
