package model

type Choice struct {
	BaseModel
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text" gorm:"type:text;not null"`
	// Weightage lies in [0.00, 100.00]. Choices of a question need not sum to 100.
	Weightage float64 `json:"weightage" gorm:"not null;default:0"`
}
