package model

// CompanyInvite invites a user to join a company as an employee. Unlike an
// individual Invite it starts in PENDING until an email-dispatch attempt
// resolves it to SENT or SENT_FAILED.
type CompanyInvite struct {
	BaseModel
	CompanyID  uint         `json:"company_id" gorm:"not null;index"`
	Company    Company      `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	ReceiverID uint         `json:"receiver_id" gorm:"not null;index"`
	Receiver   User         `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
	FirstName  string       `json:"first_name" gorm:"not null"`
	LastName   string       `json:"last_name"`
	Status     InviteStatus `json:"status" gorm:"not null;default:'PENDING'"`
	Token      string       `json:"-" gorm:"not null;uniqueIndex"`
}
