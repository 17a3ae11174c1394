package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LineReadPolicy: hat okuma politikası. İki meşru işletme modu var:
// "assigned" sadece atanmış hatları gösterir, "all" tüm hatları her
// oturum açmış kullanıcıya okunur yapar (yazma her iki modda da
// atamayla sınırlı kalır).
type LineReadPolicy string

const (
	ReadPolicyAssigned LineReadPolicy = "assigned"
	ReadPolicyAll      LineReadPolicy = "all"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	UploadPath string // Hat başlık görsellerinin kaydedileceği klasör

	LineReadPolicy     LineReadPolicy
	SuperAdminUsername string // Sabitlenmiş super admin kullanıcı adı

	// AI asistan (salt okunur sohbet) ayarları
	AIAPIKey  string
	AIBaseURL string // Boş bırakılırsa sağlayıcının varsayılanı kullanılır
	AIModel   string
}

func Load() *Config {
	// .env varsa yükle, yoksa sessizce geç (production'da env zaten set)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:        getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=sps port=5432 sslmode=disable"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		CORSOrigins:        getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		UploadPath:         getEnv("UPLOAD_PATH", "./uploads"),
		LineReadPolicy:     LineReadPolicy(getEnv("LINE_READ_POLICY", string(ReadPolicyAssigned))),
		SuperAdminUsername: strings.ToLower(getEnv("SUPER_ADMIN_USERNAME", "ahmet mersin")),
		AIAPIKey:           getEnv("AI_API_KEY", ""),
		AIBaseURL:          getEnv("AI_BASE_URL", ""),
		AIModel:            getEnv("AI_MODEL", "gpt-4o-mini"),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.LineReadPolicy != ReadPolicyAssigned && cfg.LineReadPolicy != ReadPolicyAll {
		log.Fatalf("[FATAL] LINE_READ_POLICY geçersiz: %q (assigned | all)", cfg.LineReadPolicy)
	}
	if cfg.AIAPIKey == "" {
		log.Println("[WARN] AI_API_KEY tanımlı değil, AI asistan endpoint'i hata döndürecek.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
