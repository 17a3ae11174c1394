package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"sps-backend/internal/config"
	"sps-backend/internal/database"
	"sps-backend/internal/models"
	"sps-backend/internal/yeardata"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Eski elektronik tablodan aktarılan değerler Türkçe sayı formatında
// gelir: binlik ayracı nokta, ondalık ayracı virgül ("1.519,13").
type rawEntry struct {
	dt, ut, nva, kd, ke, ker, otr, ksr, tsr string
}

var db2023 = map[string]rawEntry{
	"NL AD6-1250A": {dt: "1.519,13", ut: "1.359,65", nva: "159,48", kd: "0,895", ke: "0,673", ker: "0,723", otr: "2100,31", tsr: "290382,902", ksr: "0,723"},
	"NL AD6-2500A": {dt: "1.384,64", ut: "1.244,38", nva: "140,25", kd: "0,898", ke: "0,673", ker: "0,723", otr: "1914,37", tsr: "290382,902", ksr: "0,723"},
	"NL CL6-1250A": {dt: "1.328,46", ut: "1.199,44", nva: "129,02", kd: "0,902", ke: "0,673", ker: "0,723", otr: "1836,69", tsr: "290382,902", ksr: "0,723"},
	"NL GL6-1250A": {dt: "1.292,90", ut: "1.171,16", nva: "121,74", kd: "0,905", ke: "0,673", ker: "0,723", otr: "1787,53", tsr: "290382,902", ksr: "0,723"},
	"XE AD6-1250A": {dt: "1.316,73", ut: "632,02", nva: "684,71", kd: "0,479", ke: "0,673", ker: "0,723", otr: "1820,48", tsr: "290382,902", ksr: "0,723"},
	"XE TT6-1250A": {dt: "994,25", ut: "13,44", nva: "980,81", kd: "0,013", ke: "0,673", ker: "0,723", otr: "1374,62", tsr: "290382,902", ksr: "0,723"},
}

var db2024 = map[string]rawEntry{
	"XE AD6-1250A": {dt: "1308,4", ut: "937,45", nva: "370,95", kd: "0,716", ke: "0,733", ker: "0,783", otr: "1669,14", tsr: "#DIV/0!"},
	"XE AD6-2500A": {dt: "1338,4", ut: "967,45", nva: "370,95", kd: "0,722", ke: "0,733", ker: "0,783", otr: "1707,41", tsr: "#DIV/0!"},
	"NL GL6-1250A": {dt: "1.345,72", ut: "975,36", nva: "370,36", kd: "0,725", ke: "0,755", ker: "0,805", otr: "1671,72", tsr: "#DIV/0!"},
}

var db2025 = map[string]rawEntry{
	"XE AD6-1250A": {dt: "1.335,40", ut: "944,45", nva: "390,95", kd: "0,707", ke: "0,755", ker: "0,805", otr: "1658,9", tsr: "#DIV/0!"},
	"XE GL6-1250A": {dt: "1.307,62", ut: "935,13", nva: "372,49", kd: "0,715", ke: "0,755", ker: "0,805", otr: "1624,39", tsr: "#DIV/0!"},
}

// parseValue: "1.519,13" -> 1519.13, "0,895" -> 0.895.
// Boş hücre ve "#DIV/0!" kalıntısı nil döner.
func parseValue(val string) *float64 {
	if val == "" || val == "#DIV/0!" {
		return nil
	}
	clean := strings.ReplaceAll(val, ".", "")
	clean = strings.Replace(clean, ",", ".", 1)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil
	}
	return &v
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func upsertLine(db *gorm.DB, name, slug string, headerImageURL *string) (*models.Line, error) {
	var l models.Line
	err := db.Where("slug = ?", slug).First(&l).Error
	if err == gorm.ErrRecordNotFound {
		l = models.Line{Name: name, Slug: slug, HeaderImageURL: headerImageURL}
		return &l, db.Create(&l).Error
	}
	if err != nil {
		return nil, err
	}
	if headerImageURL != nil {
		if err := db.Model(&l).Update("header_image_url", headerImageURL).Error; err != nil {
			return nil, err
		}
	}
	return &l, nil
}

func upsertProduct(db *gorm.DB, name string, lineID uint) (*models.Product, error) {
	var p models.Product
	err := db.Where("name = ?", name).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		p = models.Product{Name: name, LineID: lineID}
		return &p, db.Create(&p).Error
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func seedYear(db *gorm.DB, lineID uint, year int, entries map[string]rawEntry) error {
	for name, e := range entries {
		p, err := upsertProduct(db, name, lineID)
		if err != nil {
			return err
		}
		_, err = yeardata.Upsert(db, yeardata.UpsertRequest{
			ProductID: p.ID,
			Year:      year,
			DT:        parseValue(e.dt),
			UT:        parseValue(e.ut),
			NVA:       parseValue(e.nva),
			KD:        parseValue(e.kd),
			KE:        parseValue(e.ke),
			KER:       parseValue(e.ker),
			KSR:       parseValue(e.ksr),
			OTR:       parseValue(e.otr),
			TSR:       strPtr(e.tsr),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func main() {
	cfg := config.Load()
	database.Init(cfg)
	db := database.DB

	lines := []struct {
		name, slug string
		header     *string
	}{
		{"F400", "f400", strPtr("/F400i.png")},
		{"MC Set", "mc-set", nil},
		{"Okken", "okken", nil},
		{"Line 4", "line-4", nil},
		{"Line 5", "line-5", nil},
		{"Line 6", "line-6", nil},
	}

	var f400 *models.Line
	for _, l := range lines {
		created, err := upsertLine(db, l.name, l.slug, l.header)
		if err != nil {
			log.Fatalf("Hat oluşturulamadı (%s): %v", l.name, err)
		}
		if l.slug == "f400" {
			f400 = created
		}
	}

	for year, entries := range map[int]map[string]rawEntry{
		2023: db2023,
		2024: db2024,
		2025: db2025,
	} {
		if err := seedYear(db, f400.ID, year, entries); err != nil {
			log.Fatalf("%d verisi yüklenemedi: %v", year, err)
		}
	}

	// Varsayılan ayar satırı (yıl sekmeleri) tembel oluşturma üzerinden
	if _, err := database.GetSettings(db); err != nil {
		log.Fatalf("Ayarlar oluşturulamadı: %v", err)
	}

	// Super admin hesabı
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("[FATAL] SEED_ADMIN_PASSWORD tanımlanmalı")
	}

	var admin models.User
	err := db.Where("LOWER(username) = ?", cfg.SuperAdminUsername).First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Şifre hashlenemedi: %v", err)
		}
		admin = models.User{
			Username:     cfg.SuperAdminUsername,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Super admin oluşturulamadı: %v", err)
		}
		log.Println("Super admin oluşturuldu:", admin.Username)
	} else if err != nil {
		log.Fatalf("Kullanıcı sorgusu başarısız: %v", err)
	}

	log.Println("Seed tamamlandı.")
}
