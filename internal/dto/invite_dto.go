package dto

// InviteCreateDTO invites a new individual user to the platform.
type InviteCreateDTO struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
}

// InviteAcceptDTO accepts an individual invite; the receiver picks their
// password here.
type InviteAcceptDTO struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type InviteAcceptedDTO struct {
	Message   string `json:"message"`
	AuthToken string `json:"auth_token"`
}

// CompanyInviteCreateDTO invites a user (existing or new) to join a company.
type CompanyInviteCreateDTO struct {
	ReceiverEmail string `json:"receiver_email" binding:"required,email"`
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name"`
}

type CompanyInviteActionDTO struct {
	Token string `json:"token" binding:"required"`
}

type CompanyInviteDTO struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Status    string `json:"status"`
}
