package model

// InviteStatus is the monotonic invite lifecycle. ACCEPTED and CANCELLED are
// terminal; no transition leaves either.
type InviteStatus string

const (
	InviteSent       InviteStatus = "SENT"
	InviteSentFailed InviteStatus = "SENT_FAILED"
	InviteAccepted   InviteStatus = "ACCEPTED"
	InviteCancelled  InviteStatus = "CANCELLED"
	InvitePending    InviteStatus = "PENDING"
)

// Invite is an individual account invite. The token is generated exactly once
// at creation and is globally unique; individual invites start in SENT and
// rely on async email delivery to confirm.
type Invite struct {
	BaseModel
	SenderID   uint         `json:"sender_id" gorm:"not null;index"`
	Sender     User         `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	ReceiverID uint         `json:"receiver_id" gorm:"not null;index"`
	Receiver   User         `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
	Status     InviteStatus `json:"status" gorm:"not null;default:'SENT'"`
	Token      string       `json:"-" gorm:"not null;uniqueIndex"`
}
