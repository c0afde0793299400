package dto

import "time"

type CompanyCreateDTO struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
	About   string `json:"about"`
}

type CompanyDTO struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	Pincode    string    `json:"pincode,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	About      string    `json:"about,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type EmployeeDTO struct {
	ID             uint   `json:"id"`
	UserID         uint   `json:"user_id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name,omitempty"`
	IsCompanyAdmin bool   `json:"is_company_admin"`
}

// CompanyQuestionnaireCreateDTO attaches a questionnaire to a company.
type CompanyQuestionnaireCreateDTO struct {
	QuestionnaireID uint `json:"questionnaire_id" binding:"required"`
}

type CompanyQuestionnaireUpdateDTO struct {
	CurrentlyActive *bool `json:"currently_active" binding:"required"`
}

type CompanyQuestionnaireDTO struct {
	ID                 uint   `json:"id"`
	CompanyID          uint   `json:"company_id"`
	QuestionnaireID    uint   `json:"questionnaire_id"`
	QuestionnaireTitle string `json:"questionnaire_title,omitempty"`
	CurrentlyActive    bool   `json:"currently_active"`
}

// RuleCreateDTO creates a recurring notification rule for a company
// questionnaire. Cron is a standard five-field cron expression.
type RuleCreateDTO struct {
	RuleType string `json:"rule_type" binding:"required,oneof=DISABLE ONBOARDING ONCE DAILY WEEKLY MONTHLY YEARLY MANUAL"`
	Cron     string `json:"cron" binding:"required"`
}

type RuleDTO struct {
	ID                     uint   `json:"id"`
	CompanyQuestionnaireID uint   `json:"company_questionnaire_id"`
	RuleType               string `json:"rule_type"`
	NotificationRef        string `json:"notification_ref"`
	Enabled                bool   `json:"enabled"`
}
