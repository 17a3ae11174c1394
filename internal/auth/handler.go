package auth

import (
	"strings"

	"sps-backend/internal/config"
	"sps-backend/internal/database"
	"sps-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	UserID          *uint  `json:"userId"` // Admin başka bir kullanıcının şifresini sıfırlarken
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)

		var user models.User
		if err := database.DB.Where("LOWER(username) = LOWER(?)", body.Username).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
		}

		token, err := GenerateToken(cfg, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":       user.ID,
				"username": user.Username,
				"role":     ResolveRole(cfg, &user),
			},
		})
	}
}

func MeHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := UserIDFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Oturum bilgisi alınamadı")
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı bulunamadı")
		}

		return c.JSON(fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"role":       ResolveRole(cfg, &user),
			"created_at": user.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// ChangePasswordHandler: kullanıcı kendi şifresini mevcut şifresiyle
// değiştirir. Admin, userId vererek başka bir kullanıcının şifresini
// sıfırlayabilir; super admin şifresini ise yalnızca super admin değiştirir.
func ChangePasswordHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ChangePasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if len(body.NewPassword) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Şifre en az 6 karakter olmalı")
		}

		userID, _ := UserIDFromContext(c)
		role, _ := RoleFromContext(c)

		var target models.User
		if role.IsAdmin() && body.UserID != nil && *body.UserID != userID {
			if err := database.DB.First(&target, *body.UserID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
			}
			// Super admin şifresi sadece super admin tarafından değiştirilebilir
			if ResolveRole(cfg, &target) == models.RoleSuperAdmin && role != models.RoleSuperAdmin {
				return fiber.NewError(fiber.StatusForbidden, "Super admin şifresi değiştirilemez")
			}
		} else {
			if err := database.DB.First(&target, userID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
			}
			if body.CurrentPassword == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Mevcut şifre zorunlu")
			}
			if err := bcrypt.CompareHashAndPassword([]byte(target.PasswordHash), []byte(body.CurrentPassword)); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Mevcut şifre hatalı")
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		if err := database.DB.Model(&target).Update("password_hash", string(hash)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre güncellenemedi")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
