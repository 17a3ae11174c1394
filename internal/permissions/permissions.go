package permissions

import (
	"sps-backend/internal/config"
	"sps-backend/internal/models"

	"gorm.io/gorm"
)

// Intent: erişimin amacı. Okuma politikası konfigüre edilebilir olduğu
// için handler'lar niyetlerini açıkça belirtir.
type Intent int

const (
	IntentRead Intent = iota
	IntentWrite
)

// CanAccessLine: kullanıcının hatta erişimi var mı? Admin ve super admin
// her zaman erişir. Yazma her zaman UserLine atamasına bağlıdır; okuma
// "all" politikasında tüm oturum açmış kullanıcılara açıktır.
// Önbellek yok, her çağrı veritabanına gider.
func CanAccessLine(db *gorm.DB, policy config.LineReadPolicy, userID uint, role models.UserRole, lineID uint, intent Intent) (bool, error) {
	if role.IsAdmin() {
		return true, nil
	}
	if intent == IntentRead && policy == config.ReadPolicyAll {
		return true, nil
	}

	var count int64
	err := db.Model(&models.UserLine{}).
		Where("user_id = ? AND line_id = ?", userID, lineID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AccessibleLines: kullanıcının görebileceği hatlar. Adminler tüm
// hatları, diğerleri atandıkları hatları görür ("all" okuma
// politikasında herkes tüm hatları görür).
func AccessibleLines(db *gorm.DB, policy config.LineReadPolicy, userID uint, role models.UserRole) ([]models.Line, error) {
	var lines []models.Line

	if role.IsAdmin() || policy == config.ReadPolicyAll {
		if err := db.Order("id asc").Find(&lines).Error; err != nil {
			return nil, err
		}
		return lines, nil
	}

	err := db.
		Joins("JOIN user_lines ON user_lines.line_id = lines.id").
		Where("user_lines.user_id = ?", userID).
		Order("lines.id asc").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// AccessibleLineIDs: AccessibleLines'ın sadece ID döndüren hali,
// analitik sorgularında filtre olarak kullanılır.
func AccessibleLineIDs(db *gorm.DB, policy config.LineReadPolicy, userID uint, role models.UserRole) ([]uint, error) {
	lines, err := AccessibleLines(db, policy, userID, role)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ID)
	}
	return ids, nil
}
