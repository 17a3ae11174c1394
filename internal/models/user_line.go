package models

import "time"

// UserLine: admin olmayan bir kullanıcıya hat görünürlüğü/düzenleme
// yetkisi veren atama kaydı. (user_id, line_id) çifti benzersizdir.
type UserLine struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex:idx_user_line;not null"`
	LineID    uint `gorm:"uniqueIndex:idx_user_line;not null"`
	CreatedAt time.Time

	Line Line `gorm:"constraint:OnDelete:CASCADE"`
}
