package models

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
	// RoleSuperAdmin veritabanında tutulmaz; login sırasında sabitlenmiş
	// kullanıcı adına göre çözülür ve sadece token içinde taşınır.
	RoleSuperAdmin UserRole = "super_admin"
)

// IsAdmin: admin veya super admin yetki seviyesinde mi?
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
