package audit

import (
	"strconv"

	"sps-backend/internal/database"
	"sps-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	EntityType  string `json:"entity_type"`
	EntityID    uint   `json:"entity_id"`
	Action      string `json:"action"`
	Description string `json:"description"`
	BeforeData  string `json:"before_data"`
	AfterData   string `json:"after_data"`
	CreatedAt   string `json:"created_at"`
}

// GET /api/audit-logs?limit=50&offset=0&entityType=line
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "50"))
		if err != nil || limit < 1 || limit > 500 {
			limit = 50
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		q := database.DB.Model(&models.AuditLog{})
		if et := c.Query("entityType"); et != "" {
			q = q.Where("entity_type = ?", et)
		}

		var logs []models.AuditLog
		if err := q.Order("id desc").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar listelenemedi")
		}

		res := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			res = append(res, AuditLogResponse{
				ID:          l.ID,
				UserID:      l.UserID,
				Username:    l.Username,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      string(l.Action),
				Description: l.Description,
				BeforeData:  l.BeforeData,
				AfterData:   l.AfterData,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}
