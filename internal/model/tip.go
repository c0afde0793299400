package model

type Tip struct {
	BaseModel
	QuestionnaireID uint      `json:"questionnaire_id" gorm:"not null;index"`
	Text            string    `json:"text" gorm:"type:text;not null"`
	RiskLevel       RiskLevel `json:"risk_level" gorm:"not null;default:'LOW'"`
}
