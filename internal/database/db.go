package database

import (
	"log"

	"sps-backend/internal/config"
	"sps-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate: şemayı günceller. Testler bunu in-memory sqlite üzerinde çağırır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Line{},
		&models.Product{},
		&models.YearData{},
		&models.UserLine{},
		&models.GlobalSettings{},
		&models.AuditLog{},
	)
}

// GetSettings: tekil ayar satırını okur, yoksa varsayılan yıllarla oluşturur.
// Sistemde her zaman en fazla bir ayar kaydı bulunur.
func GetSettings(db *gorm.DB) (*models.GlobalSettings, error) {
	var settings models.GlobalSettings
	err := db.First(&settings, "id = ?", models.SettingsID).Error
	if err == nil {
		return &settings, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	settings = models.GlobalSettings{ID: models.SettingsID}
	settings.SetYears(models.DefaultYears)
	if err := db.Create(&settings).Error; err != nil {
		// İlk okuma yarışında diğer istek kazanmış olabilir
		if err2 := db.First(&settings, "id = ?", models.SettingsID).Error; err2 == nil {
			return &settings, nil
		}
		return nil, err
	}
	return &settings, nil
}
