package model

import "time"

type Company struct {
	BaseModel
	Name             string    `json:"name" gorm:"not null;uniqueIndex"`
	Address          string    `json:"address" gorm:"type:text"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Pincode          string    `json:"pincode"`
	Phone            string    `json:"phone"`
	About            string    `json:"about" gorm:"type:text"`
	IsVerified       bool      `json:"is_verified" gorm:"not null;default:false"`
	RegistrationDate time.Time `json:"registration_date" gorm:"autoCreateTime"`
}
