package model

// RuleType is the kind of recurring notification rule a company imposes on a
// questionnaire.
type RuleType string

const (
	RuleDisable    RuleType = "DISABLE"
	RuleOnboarding RuleType = "ONBOARDING"
	RuleOnce       RuleType = "ONCE"
	RuleDaily      RuleType = "DAILY"
	RuleWeekly     RuleType = "WEEKLY"
	RuleMonthly    RuleType = "MONTHLY"
	RuleYearly     RuleType = "YEARLY"
	RuleManual     RuleType = "MANUAL"
)

// QuestionnaireRule binds a company-questionnaire pairing to a recurring job
// in the external scheduler. NotificationRef is the scheduler's opaque job
// handle; its enabled flag mirrors CompanyQuestionnaire.CurrentlyActive.
type QuestionnaireRule struct {
	BaseModel
	CompanyQuestionnaireID uint                 `json:"company_questionnaire_id" gorm:"not null;index"`
	CompanyQuestionnaire   CompanyQuestionnaire `json:"company_questionnaire,omitempty" gorm:"foreignKey:CompanyQuestionnaireID"`
	RuleType               RuleType             `json:"rule_type" gorm:"not null;default:'DISABLE'"`
	NotificationRef        string               `json:"notification_ref" gorm:"not null"`
}
