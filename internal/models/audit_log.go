package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionImport AuditAction = "import"
)

// AuditLog: admin mutasyonlarının izi. BeforeData/AfterData JSON string
// olarak tutulur (Postgres tarafında jsonb'ye cast edilebilir).
type AuditLog struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index"`
	Username    string `gorm:"size:255"`
	EntityType  string `gorm:"size:50;index"`
	EntityID    uint
	Action      AuditAction `gorm:"size:20"`
	Description string      `gorm:"size:500"`
	BeforeData  string      `gorm:"type:text"`
	AfterData   string      `gorm:"type:text"`
	CreatedAt   time.Time
}
