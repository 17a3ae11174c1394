package auth

import (
	"fmt"
	"strings"

	"sps-backend/internal/config"
	"sps-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUsernameKey = "username"
	CtxUserRoleKey = "user_role"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("geçersiz imzalama yöntemi")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUsernameKey, claims.Username)
		c.Locals(CtxUserRoleKey, claims.Role)

		return c.Next()
	}
}

// RequireAdmin: admin veya super admin olmayan istekleri reddeder.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := RoleFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}
		if !role.IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
		}
		return c.Next()
	}
}

func UserIDFromContext(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uint)
	return id, ok
}

func UsernameFromContext(c *fiber.Ctx) (string, bool) {
	name, ok := c.Locals(CtxUsernameKey).(string)
	return name, ok
}

func RoleFromContext(c *fiber.Ctx) (models.UserRole, bool) {
	role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
	return role, ok
}
