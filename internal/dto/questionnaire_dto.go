package dto

import "time"

// ChoiceCreateDTO is used within QuestionCreateDTO for admin catalog creation.
type ChoiceCreateDTO struct {
	Text      string  `json:"text" binding:"required"`
	Weightage float64 `json:"weightage" binding:"min=0,max=100"`
}

type QuestionCreateDTO struct {
	Text         string            `json:"text" binding:"required"`
	QuestionType string            `json:"question_type" binding:"required,oneof=MCQ BINARY TEXT"`
	Order        int               `json:"order"`
	Choices      []ChoiceCreateDTO `json:"choices" binding:"omitempty,dive"`
}

// QuestionnaireCreateDTO is for admins to create a questionnaire with all its
// questions and choices in one request.
type QuestionnaireCreateDTO struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	IsMandatory bool                `json:"is_mandatory"`
	IsPublished bool                `json:"is_published"`
	Questions   []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

type TipCreateDTO struct {
	Text      string `json:"text" binding:"required"`
	RiskLevel string `json:"risk_level" binding:"required,oneof=LOW MEDIUM HIGH"`
}

type ChoiceDTO struct {
	ID        uint    `json:"id"`
	Text      string  `json:"text"`
	Weightage float64 `json:"weightage,omitempty"`
}

type QuestionDTO struct {
	ID           uint        `json:"id"`
	Text         string      `json:"text"`
	QuestionType string      `json:"question_type"`
	Order        int         `json:"order"`
	Choices      []ChoiceDTO `json:"choices,omitempty"`
}

type QuestionnaireDTO struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	IsPublished bool          `json:"is_published"`
	PublishedOn *time.Time    `json:"published_on,omitempty"`
	IsMandatory bool          `json:"is_mandatory"`
	Questions   []QuestionDTO `json:"questions,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// QuestionnaireSummaryDTO is for listing questionnaires available to users.
type QuestionnaireSummaryDTO struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	QuestionCount int    `json:"question_count"`
	IsMandatory   bool   `json:"is_mandatory"`
}

type TipDTO struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	RiskLevel string `json:"risk_level"`
}

// PendingQuestionnaireDTO lists a company questionnaire the user has not
// answered yet.
type PendingQuestionnaireDTO struct {
	CompanyQuestionnaireID uint   `json:"company_questionnaire_id"`
	CompanyID              uint   `json:"company_id"`
	CompanyName            string `json:"company_name"`
	QuestionnaireID        uint   `json:"questionnaire_id"`
	QuestionnaireTitle     string `json:"questionnaire_title"`
}
