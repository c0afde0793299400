package model

// RiskLevel classifies an aggregate submission score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskLevelForScore maps a score onto the three integer bands: LOW 0-35,
// MEDIUM 36-66, HIGH 67-99. Anything outside every band falls back to LOW.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= 36 && score <= 66:
		return RiskMedium
	case score >= 67 && score <= 99:
		return RiskHigh
	default:
		return RiskLow
	}
}

// QuestionnaireResponse is a submission header. It is owned exclusively by the
// submission engine: created once per submission and never mutated after its
// initial score/risk fill, except by soft delete.
type QuestionnaireResponse struct {
	BaseModel
	UserID uint `json:"user_id" gorm:"not null;index"`
	User   User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	// CompanyID is null when a user self-submits without company sponsorship.
	CompanyID       *uint              `json:"company_id,omitempty" gorm:"index"`
	Company         *Company           `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	QuestionnaireID uint               `json:"questionnaire_id" gorm:"not null;index"`
	Questionnaire   Questionnaire      `json:"questionnaire,omitempty" gorm:"foreignKey:QuestionnaireID"`
	Score           *int               `json:"score,omitempty"`
	RiskLevel       RiskLevel          `json:"risk_level" gorm:"not null;default:'LOW'"`
	QuestionResponses []QuestionResponse `json:"question_responses,omitempty" gorm:"foreignKey:QuestionnaireResponseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
