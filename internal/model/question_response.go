package model

// QuestionResponse is a single line item of a submission. Created in bulk,
// immutable thereafter, cascade-deleted with its parent header.
type QuestionResponse struct {
	BaseModel
	QuestionnaireResponseID uint     `json:"questionnaire_response_id" gorm:"not null;index"`
	QuestionID              uint     `json:"question_id" gorm:"not null;index"`
	Question                Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	UserInput               string   `json:"user_input" gorm:"type:text;not null"`
}
