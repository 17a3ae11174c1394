package product

import (
	"strings"

	"sps-backend/internal/auth"
	"sps-backend/internal/config"
	"sps-backend/internal/database"
	"sps-backend/internal/models"
	"sps-backend/internal/permissions"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type YearDataResponse struct {
	ID   uint     `json:"id"`
	Year int      `json:"year"`
	DT   *float64 `json:"dt"`
	UT   *float64 `json:"ut"`
	NVA  *float64 `json:"nva"`
	KD   *float64 `json:"kd"`
	KE   *float64 `json:"ke"`
	KER  *float64 `json:"ker"`
	KSR  *float64 `json:"ksr"`
	OTR  *float64 `json:"otr"`
	TSR  *string  `json:"tsr"`
}

type ProductResponse struct {
	ID       uint               `json:"id"`
	Name     string             `json:"name"`
	LineID   uint               `json:"lineId"`
	Image    *string            `json:"image"`
	YearData []YearDataResponse `json:"yearData"`
}

type CreateProductRequest struct {
	Name   string  `json:"name"`
	LineID uint    `json:"lineId"`
	Image  *string `json:"image"`
}

type UpdateProductRequest struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

// ToResponse: ürünü yıl verileriyle birlikte API şekline çevirir.
// Analitik ve asistan paketleri de aynı iç gösterimi kullanır.
func ToResponse(p models.Product) ProductResponse {
	yd := make([]YearDataResponse, 0, len(p.YearData))
	for _, d := range p.YearData {
		yd = append(yd, YearDataResponse{
			ID: d.ID, Year: d.Year,
			DT: d.DT, UT: d.UT, NVA: d.NVA,
			KD: d.KD, KE: d.KE, KER: d.KER, KSR: d.KSR, OTR: d.OTR,
			TSR: d.TSR,
		})
	}
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		LineID:   p.LineID,
		Image:    p.Image,
		YearData: yd,
	}
}

// GET /api/products?lineId=3 — yıl verileri gömülü gelir.
// lineId verilmezse kullanıcının erişebildiği tüm hatların ürünleri döner.
func ListProductsHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := auth.UserIDFromContext(c)
		role, _ := auth.RoleFromContext(c)

		q := database.DB.Preload("YearData").Order("name asc")

		if lineIDStr := c.Query("lineId"); lineIDStr != "" {
			lineID := c.QueryInt("lineId")
			if lineID < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hat ID")
			}
			ok, err2 := permissions.CanAccessLine(database.DB, cfg.LineReadPolicy, userID, role, uint(lineID), permissions.IntentRead)
			if err2 != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Yetki kontrolü yapılamadı")
			}
			if !ok {
				return fiber.NewError(fiber.StatusForbidden, "Bu satıra erişim yetkiniz yok")
			}
			q = q.Where("line_id = ?", lineID)
		} else if !role.IsAdmin() {
			ids, err := permissions.AccessibleLineIDs(database.DB, cfg.LineReadPolicy, userID, role)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Yetki kontrolü yapılamadı")
			}
			if len(ids) == 0 {
				return c.JSON([]ProductResponse{})
			}
			q = q.Where("line_id IN ?", ids)
		}

		var products []models.Product
		if err := q.Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, ToResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/products — hatta yazma erişimi olan herkes ürün ekleyebilir
func CreateProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı zorunlu")
		}
		if len(body.Name) > 255 {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı en fazla 255 karakter olabilir")
		}
		if body.LineID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Hat ID zorunlu")
		}

		userID, _ := auth.UserIDFromContext(c)
		role, _ := auth.RoleFromContext(c)

		ok, err := permissions.CanAccessLine(database.DB, cfg.LineReadPolicy, userID, role, body.LineID, permissions.IntentWrite)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yetki kontrolü yapılamadı")
		}
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Bu satıra erişim yetkiniz yok")
		}

		var line models.Line
		if err := database.DB.First(&line, body.LineID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Hat bulunamadı")
		}

		p := models.Product{Name: body.Name, LineID: body.LineID, Image: body.Image}
		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(ToResponse(p))
	}
}

// PATCH /api/products/:id
func UpdateProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := c.ParamsInt("id")
		if err != nil || productID < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ürün ID")
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

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		updates := map[string]any{}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" || len(name) > 255 {
				return fiber.NewError(fiber.StatusBadRequest, "Ürün adı 1-255 karakter olmalı")
			}
			updates["name"] = name
		}
		if body.Image != nil {
			if len(*body.Image) > 1000 {
				return fiber.NewError(fiber.StatusBadRequest, "Görsel URL'i en fazla 1000 karakter olabilir")
			}
			updates["image"] = *body.Image
		}

		if len(updates) > 0 {
			if err := database.DB.Model(&p).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
			}
		}

		return c.JSON(ToResponse(p))
	}
}

// DELETE /api/products/:id — yıl verileriyle birlikte siler
func DeleteProductHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := c.ParamsInt("id")
		if err != nil || productID < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ürün ID")
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

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", p.ID).Delete(&models.YearData{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Product{}, p.ID).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		return c.JSON(fiber.Map{"message": "Ürün silindi"})
	}
}
