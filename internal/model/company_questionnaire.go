package model

// CompanyQuestionnaire attaches a questionnaire to a company. Mutating
// CurrentlyActive cascades to the enabled flag of every attached
// QuestionnaireRule's scheduler job.
type CompanyQuestionnaire struct {
	BaseModel
	CompanyID       uint          `json:"company_id" gorm:"not null;index;uniqueIndex:idx_company_questionnaire"`
	Company         Company       `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	QuestionnaireID uint          `json:"questionnaire_id" gorm:"not null;index;uniqueIndex:idx_company_questionnaire"`
	Questionnaire   Questionnaire `json:"questionnaire,omitempty" gorm:"foreignKey:QuestionnaireID"`
	CurrentlyActive bool          `json:"currently_active" gorm:"not null;default:true"`
}
