package backup

import (
	"log"
	"time"

	"sps-backend/internal/audit"
	"sps-backend/internal/auth"
	"sps-backend/internal/database"
	"sps-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Snapshot: tam ilişkisel yedek. Kullanıcılar ve şifreler bilinçli
// olarak DAHİL DEĞİLDİR; yedek dosyası hesap bilgisi taşımaz.
type Snapshot struct {
	Lines     []models.Line     `json:"lines"`
	Products  []models.Product  `json:"products"`
	YearData  []models.YearData `json:"yearData"`
	UserLines []models.UserLine `json:"userLines"`
}

// Export: tüm tabloların anlık görüntüsünü alır.
func Export(db *gorm.DB) (*Snapshot, error) {
	var snap Snapshot
	if err := db.Order("id asc").Find(&snap.Lines).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id asc").Find(&snap.Products).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id asc").Find(&snap.YearData).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id asc").Find(&snap.UserLines).Error; err != nil {
		return nil, err
	}
	return &snap, nil
}

// Import: kullanıcı dışı tabloları yedekle TOPTAN değiştirir.
// Tek transaction: herhangi bir adım başarısız olursa hiçbir değişiklik
// kalıcı olmaz. Kısmi uygulama yoktur.
func Import(db *gorm.DB, snap *Snapshot) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.YearData{}, &models.Product{}, &models.UserLine{}, &models.Line{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		for i := range snap.Lines {
			if err := tx.Create(&snap.Lines[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Products {
			if err := tx.Create(&snap.Products[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.YearData {
			if err := tx.Create(&snap.YearData[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.UserLines {
			if err := tx.Create(&snap.UserLines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GET /api/backup — admin
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := Export(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yedek oluşturulamadı")
		}

		c.Set(fiber.HeaderContentDisposition,
			`attachment; filename="sps-backup-`+time.Now().Format("2006-01-02")+`.json"`)
		return c.JSON(snap)
	}
}

// POST /api/backup — admin, toptan değiştirme
func ImportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var snap Snapshot
		if err := c.BodyParser(&snap); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yedek dosyası")
		}

		if err := Import(database.DB, &snap); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yedek içe aktarılamadı")
		}

		userID, _ := auth.UserIDFromContext(c)
		username, _ := auth.UsernameFromContext(c)
		if err := audit.WriteLog(audit.LogOptions{
			UserID: userID, Username: username,
			EntityType: "backup", Action: models.AuditActionImport,
			Description: "Yedek içe aktarıldı (toptan değiştirme)",
		}); err != nil {
			log.Println("Audit log yazılamadı:", err)
		}

		return c.JSON(fiber.Map{
			"message":   "Yedek içe aktarıldı",
			"lines":     len(snap.Lines),
			"products":  len(snap.Products),
			"yearData":  len(snap.YearData),
			"userLines": len(snap.UserLines),
		})
	}
}
