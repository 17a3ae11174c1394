package audit

import (
	"encoding/json"
	"fmt"

	"sps-backend/internal/database"
	"sps-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	Username    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog: admin mutasyonunu iz kaydına yazar. Kayıt başarısız olsa
// bile asıl işlem geri alınmaz; çağıran hatayı loglamakla yetinir.
func WriteLog(opts LogOptions) error {
	// Boş string yerine "null" JSON değeri kullanılır (jsonb uyumu)
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		Username:    opts.Username,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}
