package user

import (
	"log"
	"strings"

	"sps-backend/internal/audit"
	"sps-backend/internal/auth"
	"sps-backend/internal/config"
	"sps-backend/internal/database"
	"sps-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // admin | user, boşsa user
}

type ResetPasswordRequest struct {
	ID       uint   `json:"id"`
	Password string `json:"password"`
}

// GET /api/users — şifre hash'leri asla dönmez
func ListUsersHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("id asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}

		res := make([]UserResponse, 0, len(users))
		for _, u := range users {
			res = append(res, UserResponse{
				ID:        u.ID,
				Username:  u.Username,
				Role:      string(auth.ResolveRole(cfg, &u)),
				CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}

// POST /api/users
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu")
		}
		if len(body.Username) > 255 {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı en fazla 255 karakter olabilir")
		}
		if len(body.Password) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Şifre en az 6 karakter olmalı")
		}

		role := models.RoleUser
		if body.Role == string(models.RoleAdmin) {
			role = models.RoleAdmin
		}

		var existing models.User
		if err := database.DB.Where("LOWER(username) = LOWER(?)", body.Username).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu kullanıcı adı zaten kullanılıyor")
		}

		hash, err := bcryptHash(body.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		u := models.User{Username: body.Username, PasswordHash: hash, Role: role}
		if err := database.DB.Create(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		actorID, _ := auth.UserIDFromContext(c)
		actorName, _ := auth.UsernameFromContext(c)
		if err := audit.WriteLog(audit.LogOptions{
			UserID: actorID, Username: actorName,
			EntityType: "user", EntityID: u.ID,
			Action:      models.AuditActionCreate,
			Description: "Kullanıcı oluşturuldu: " + u.Username,
		}); err != nil {
			log.Println("Audit log yazılamadı:", err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       u.ID,
			"username": u.Username,
			"role":     u.Role,
		})
	}
}

// PUT /api/users — şifre sıfırlama (admin)
func ResetPasswordHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.ID == 0 || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı ID ve şifre zorunlu")
		}
		if len(body.Password) < 6 {
			return fiber.NewError(fiber.StatusBadRequest, "Şifre en az 6 karakter olmalı")
		}

		var target models.User
		if err := database.DB.First(&target, body.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		role, _ := auth.RoleFromContext(c)
		if auth.ResolveRole(cfg, &target) == models.RoleSuperAdmin && role != models.RoleSuperAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Super admin şifresi değiştirilemez")
		}

		hash, err := bcryptHash(body.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		if err := database.DB.Model(&target).Update("password_hash", hash).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre güncellenemedi")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/users?id=3 — super admin silinemez
func DeleteUserHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.QueryInt("id")
		if id < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı ID zorunlu")
		}

		var target models.User
		if err := database.DB.First(&target, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if auth.ResolveRole(cfg, &target) == models.RoleSuperAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Super admin silinemez")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", target.ID).Delete(&models.UserLine{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.User{}, target.ID).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}

		actorID, _ := auth.UserIDFromContext(c)
		actorName, _ := auth.UsernameFromContext(c)
		if err := audit.WriteLog(audit.LogOptions{
			UserID: actorID, Username: actorName,
			EntityType: "user", EntityID: target.ID,
			Action:      models.AuditActionDelete,
			Description: "Kullanıcı silindi: " + target.Username,
		}); err != nil {
			log.Println("Audit log yazılamadı:", err)
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
