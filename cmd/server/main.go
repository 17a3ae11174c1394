package main

import (
	"log"
	"strings"

	"sps-backend/internal/analytics"
	"sps-backend/internal/assistant"
	"sps-backend/internal/audit"
	"sps-backend/internal/auth"
	"sps-backend/internal/backup"
	"sps-backend/internal/config"
	"sps-backend/internal/database"
	"sps-backend/internal/importer"
	"sps-backend/internal/line"
	"sps-backend/internal/product"
	"sps-backend/internal/settings"
	"sps-backend/internal/upload"
	"sps-backend/internal/user"
	"sps-backend/internal/userline"
	"sps-backend/internal/yeardata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: importer.MaxTextSize + 1024*1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Yüklenen hat başlık görselleri
	app.Static("/uploads", cfg.UploadPath)

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(cfg))
	protected.Post("/auth/change-password", auth.ChangePasswordHandler(cfg))

	// Hatlar
	protected.Get("/lines", line.ListLinesHandler(cfg))
	protected.Get("/lines/:id", line.GetLineHandler(cfg))
	protected.Patch("/lines/:id", line.UpdateLineHandler(cfg))

	// Ürünler ve yıl verileri
	protected.Get("/products", product.ListProductsHandler(cfg))
	protected.Post("/products", product.CreateProductHandler(cfg))
	protected.Patch("/products/:id", product.UpdateProductHandler(cfg))
	protected.Delete("/products/:id", product.DeleteProductHandler(cfg))

	protected.Post("/year-data", yeardata.UpsertHandler(cfg))
	protected.Delete("/year-data", yeardata.DeleteHandler(cfg))
	protected.Post("/year-data/bulk", importer.BulkImportHandler(cfg))

	// Yıl sekmeleri (okuma herkese açık, yazma admin)
	protected.Get("/settings/years", settings.ListYearsHandler())
	protected.Get("/settings/header", settings.GetHeaderHandler())

	// Görsel yükleme
	protected.Post("/upload", upload.ImageHandler(cfg))

	// AI asistan (salt okunur)
	protected.Post("/chat", assistant.ChatHandler(cfg))

	// Analitik serileri
	protected.Get("/analytics/trend", analytics.TrendHandler(cfg))
	protected.Get("/analytics/comparison", analytics.ComparisonHandler(cfg))
	protected.Get("/analytics/time-breakdown", analytics.TimeBreakdownHandler(cfg))
	protected.Get("/analytics/top-products", analytics.TopProductsHandler(cfg))

	// Admin routes
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireAdmin())

	adminRoutes.Post("/lines", line.CreateLineHandler())
	adminRoutes.Delete("/lines/:id", line.DeleteLineHandler())

	adminRoutes.Get("/users", user.ListUsersHandler(cfg))
	adminRoutes.Post("/users", user.CreateUserHandler())
	adminRoutes.Put("/users", user.ResetPasswordHandler(cfg))
	adminRoutes.Delete("/users", user.DeleteUserHandler(cfg))

	adminRoutes.Get("/user-lines", userline.ListAssignmentsHandler())
	adminRoutes.Post("/user-lines", userline.AssignLinesHandler())
	adminRoutes.Delete("/user-lines", userline.RemoveAssignmentHandler())

	adminRoutes.Post("/settings/years", settings.AddYearHandler())
	adminRoutes.Delete("/settings/years", settings.RemoveYearHandler())
	adminRoutes.Patch("/settings/header", settings.UpdateHeaderHandler())

	adminRoutes.Get("/backup", backup.ExportHandler())
	adminRoutes.Post("/backup", backup.ImportHandler())
	adminRoutes.Get("/backup/excel", backup.ExcelExportHandler())

	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
