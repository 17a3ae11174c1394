package models

import "time"

type Product struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:255;not null"`
	LineID    uint    `gorm:"index;not null"`
	Image     *string `gorm:"size:1000"`
	CreatedAt time.Time
	UpdatedAt time.Time

	YearData []YearData `gorm:"constraint:OnDelete:CASCADE"`
}
