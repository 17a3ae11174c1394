package auth

import (
	"strings"
	"time"

	"sps-backend/internal/config"
	"sps-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type JWTCustomClaims struct {
	UserID   uint            `json:"user_id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// ResolveRole: kullanıcının etkin rolünü belirler. Sabitlenmiş super admin
// kullanıcı adı tek noktada burada çözülür; uygulamanın başka hiçbir
// yerinde kullanıcı adı karşılaştırması yapılmaz.
func ResolveRole(cfg *config.Config, user *models.User) models.UserRole {
	if user.Role == models.RoleAdmin && strings.ToLower(user.Username) == cfg.SuperAdminUsername {
		return models.RoleSuperAdmin
	}
	return user.Role
}

func GenerateToken(cfg *config.Config, user *models.User) (string, error) {
	claims := &JWTCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     ResolveRole(cfg, user),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // 1 gün
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
