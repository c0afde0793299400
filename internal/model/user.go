package model

import "time"

type User struct {
	BaseModel
	Email           string     `json:"email" gorm:"not null;uniqueIndex"`
	FirstName       string     `json:"first_name" gorm:"not null"`
	LastName        string     `json:"last_name"`
	Phone           string     `json:"phone"`
	PasswordHash    string     `json:"-" gorm:"type:text"`
	DOB             *time.Time `json:"dob,omitempty"`
	IsEmailVerified bool       `json:"is_email_verified" gorm:"not null;default:false"`
}

// FullName joins first and last name, skipping an empty last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
