package repository

import "gorm.io/gorm"

// visible applies the soft-delete filter. Every default read path excludes
// is_active=false rows; privileged callers pass includeInactive=true.
func visible(db *gorm.DB, includeInactive bool) *gorm.DB {
	if includeInactive {
		return db
	}
	return db.Where("is_active = ?", true)
}
