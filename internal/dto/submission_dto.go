package dto

import "time"

// AnswerDTO is one per-question answer within a submission. For MCQ/BINARY
// questions UserInput must be the exact text of one of the question's
// choices; for TEXT questions any string is accepted.
type AnswerDTO struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	UserInput  string `json:"user_input"`
}

// SubmissionDTO is the request body of a questionnaire submission.
type SubmissionDTO struct {
	CompanyID *uint       `json:"company_id"`
	Answers   []AnswerDTO `json:"answers" binding:"required,dive"`
}

type QuestionResponseDTO struct {
	ID           uint   `json:"id"`
	QuestionID   uint   `json:"question_id"`
	QuestionText string `json:"question_text,omitempty"`
	UserInput    string `json:"user_input"`
}

// QuestionnaireResponseDTO is the submission result returned to the caller
// after the response graph is committed.
type QuestionnaireResponseDTO struct {
	ID                 uint                  `json:"id"`
	UserID             uint                  `json:"user_id"`
	CompanyID          *uint                 `json:"company_id,omitempty"`
	QuestionnaireID    uint                  `json:"questionnaire_id"`
	QuestionnaireTitle string                `json:"questionnaire_title,omitempty"`
	Score              *int                  `json:"score,omitempty"`
	RiskLevel          string                `json:"risk_level"`
	QuestionResponses  []QuestionResponseDTO `json:"question_responses,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

// FillRateDTO reports how many of a company's employees have submitted a
// questionnaire since a cutoff date.
type FillRateDTO struct {
	CompanyID       uint      `json:"company_id"`
	QuestionnaireID uint      `json:"questionnaire_id"`
	Since           time.Time `json:"since"`
	EmployeeCount   int64     `json:"employee_count"`
	RespondedCount  int64     `json:"responded_count"`
	FillRate        float64   `json:"fill_rate"`
}

// ResponseSummaryDTO lists a user's past submissions.
type ResponseSummaryDTO struct {
	ID                 uint      `json:"id"`
	QuestionnaireID    uint      `json:"questionnaire_id"`
	QuestionnaireTitle string    `json:"questionnaire_title,omitempty"`
	CompanyID          *uint     `json:"company_id,omitempty"`
	CompanyName        string    `json:"company_name,omitempty"`
	Score              *int      `json:"score,omitempty"`
	RiskLevel          string    `json:"risk_level"`
	CreatedAt          time.Time `json:"created_at"`
}
