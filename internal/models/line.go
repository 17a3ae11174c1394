package models

import "time"

// Line: bir üretim hattı. Ürünler hatta bağlıdır, hat silinince
// ürünleri ve yıl verileri de silinir.
type Line struct {
	ID             uint    `gorm:"primaryKey"`
	Name           string  `gorm:"size:255;not null"`
	Slug           string  `gorm:"size:255;uniqueIndex;not null"`
	HeaderImageURL *string `gorm:"size:1000"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Products []Product `gorm:"constraint:OnDelete:CASCADE"`
}
