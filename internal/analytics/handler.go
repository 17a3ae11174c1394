package analytics

import (
	"sps-backend/internal/auth"
	"sps-backend/internal/config"
	"sps-backend/internal/database"
	"sps-backend/internal/models"
	"sps-backend/internal/permissions"

	"github.com/gofiber/fiber/v2"
)

// loadProducts: analitik sorguları için ürünleri yıl verileriyle yükler.
// lineId verilmişse okuma yetkisi denetlenir; verilmemişse admin
// olmayanlar erişebildikleri hatlarla sınırlanır.
func loadProducts(c *fiber.Ctx, cfg *config.Config) ([]models.Product, error) {
	userID, _ := auth.UserIDFromContext(c)
	role, _ := auth.RoleFromContext(c)

	q := database.DB.Preload("YearData").Order("name asc")

	if lineID := c.QueryInt("lineId"); lineID > 0 {
		ok, err := permissions.CanAccessLine(database.DB, cfg.LineReadPolicy, userID, role, uint(lineID), permissions.IntentRead)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Yetki kontrolü yapılamadı")
		}
		if !ok {
			return nil, fiber.NewError(fiber.StatusForbidden, "Bu satıra erişim yetkiniz yok")
		}
		q = q.Where("line_id = ?", lineID)
	} else if !role.IsAdmin() {
		ids, err := permissions.AccessibleLineIDs(database.DB, cfg.LineReadPolicy, userID, role)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Yetki kontrolü yapılamadı")
		}
		if len(ids) == 0 {
			return []models.Product{}, nil
		}
		q = q.Where("line_id IN ?", ids)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Ürünler okunamadı")
	}
	return products, nil
}

// GET /api/analytics/trend?metric=kd&lineId=1
func TrendHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metric := c.Query("metric", "kd")
		if !ValidMetric(metric) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz metrik")
		}

		products, err := loadProducts(c, cfg)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"metric": metric,
			"points": MetricTrend(products, metric),
		})
	}
}

// GET /api/analytics/comparison?metric=kd&year=2025&previousYear=2024&lineId=1
func ComparisonHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metric := c.Query("metric", "kd")
		if !ValidMetric(metric) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz metrik")
		}

		year := c.QueryInt("year")
		previous := c.QueryInt("previousYear")
		if year < 1 || previous < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "year ve previousYear zorunlu")
		}

		products, err := loadProducts(c, cfg)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"metric":       metric,
			"year":         year,
			"previousYear": previous,
			"items":        CompareYearOverYear(products, metric, year, previous),
		})
	}
}

// GET /api/analytics/time-breakdown?lineId=1
func TimeBreakdownHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := loadProducts(c, cfg)
		if err != nil {
			return err
		}
		return c.JSON(BreakdownTrend(products))
	}
}

// GET /api/analytics/top-products?metric=kd&year=2025&count=10&order=desc
func TopProductsHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metric := c.Query("metric", "kd")
		if !ValidMetric(metric) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz metrik")
		}

		year := c.QueryInt("year")
		if year < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "year zorunlu")
		}

		count := c.QueryInt("count", 10)
		if count < 1 || count > 100 {
			count = 10
		}
		ascending := c.Query("order") == "asc"

		products, err := loadProducts(c, cfg)
		if err != nil {
			return err
		}

		return c.JSON(TopProducts(products, metric, year, count, ascending))
	}
}
