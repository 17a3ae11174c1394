package userline

import (
	"sps-backend/internal/database"
	"sps-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AssignmentResponse struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"userId"`
	LineID uint   `json:"lineId"`
	Line   string `json:"lineName"`
}

type AssignRequest struct {
	UserID  uint   `json:"userId"`
	LineIDs []uint `json:"lineIds"`
}

func listForUser(userID uint) ([]AssignmentResponse, error) {
	var assignments []models.UserLine
	err := database.DB.Preload("Line").
		Where("user_id = ?", userID).
		Order("line_id asc").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	res := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		res = append(res, AssignmentResponse{
			ID:     a.ID,
			UserID: a.UserID,
			LineID: a.LineID,
			Line:   a.Line.Name,
		})
	}
	return res, nil
}

// GET /api/user-lines?userId=3
func ListAssignmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.QueryInt("userId")
		if userID < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı ID zorunlu")
		}

		res, err := listForUser(uint(userID))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Atamalar listelenemedi")
		}
		return c.JSON(res)
	}
}

// POST /api/user-lines — kullanıcının TÜM atamalarını verilen listeyle
// değiştirir. Silme ve ekleme tek transaction içinde yapılır.
func AssignLinesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AssignRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.UserID == 0 || body.LineIDs == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı ID ve hat listesi zorunlu")
		}

		var u models.User
		if err := database.DB.First(&u, body.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", body.UserID).Delete(&models.UserLine{}).Error; err != nil {
				return err
			}
			for _, lineID := range body.LineIDs {
				var line models.Line
				if err := tx.First(&line, lineID).Error; err != nil {
					return err
				}
				if err := tx.Create(&models.UserLine{UserID: body.UserID, LineID: lineID}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Atamalar kaydedilemedi")
		}

		res, err := listForUser(body.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Atamalar listelenemedi")
		}
		return c.JSON(res)
	}
}

// DELETE /api/user-lines?userId=3&lineId=5 — tek atamayı kaldırır
func RemoveAssignmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.QueryInt("userId")
		lineID := c.QueryInt("lineId")
		if userID < 1 || lineID < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "userId ve lineId zorunlu")
		}

		res := database.DB.Where("user_id = ? AND line_id = ?", userID, lineID).Delete(&models.UserLine{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Atama kaldırılamadı")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Atama bulunamadı")
		}

		return c.JSON(fiber.Map{"message": "Atama kaldırıldı"})
	}
}
