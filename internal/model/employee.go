package model

// Employee links a user to a company. Created only by company invite
// acceptance, atomically with the invite's status flip.
type Employee struct {
	BaseModel
	UserID         uint    `json:"user_id" gorm:"not null;index"`
	User           User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CompanyID      uint    `json:"company_id" gorm:"not null;index"`
	Company        Company `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	IsCompanyAdmin bool    `json:"is_company_admin" gorm:"not null;default:false"`
}
