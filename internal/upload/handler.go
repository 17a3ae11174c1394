package upload

import (
	"os"
	"path/filepath"
	"strings"

	"sps-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MaxImageSize: hat başlık görselleri için üst sınır.
const MaxImageSize = 5 * 1024 * 1024 // 5MB

// İzin verilen content-type -> dosya uzantısı
var allowedTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// POST /api/upload — multipart "image" alanı. Dosya rastgele (uuid)
// adla kaydedilir, dönen URL hat başlık görseli olarak kullanılır.
func ImageHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Görsel dosyası eksik")
		}

		if fileHeader.Size > MaxImageSize {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Görsel en fazla 5MB olabilir")
		}

		contentType := fileHeader.Header.Get("Content-Type")
		ext, ok := allowedTypes[strings.ToLower(contentType)]
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece PNG, JPEG, WebP ve GIF yüklenebilir")
		}

		if err := os.MkdirAll(cfg.UploadPath, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yükleme klasörü oluşturulamadı")
		}

		fileName := uuid.NewString() + ext
		dst := filepath.Join(cfg.UploadPath, fileName)
		if err := c.SaveFile(fileHeader, dst); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"url": "/uploads/" + fileName,
		})
	}
}
