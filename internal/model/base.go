package model

import "time"

// BaseModel carries the soft-delete convention shared by every entity.
// Default read paths exclude rows with IsActive=false; a privileged path may
// permanently purge them. Soft-deleting never removes foreign-key targets, so
// historical responses and invites stay queryable by id.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
