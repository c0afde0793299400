package model

import "time"

type Questionnaire struct {
	BaseModel
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`
	IsPublished bool       `json:"is_published" gorm:"not null;default:false"`
	// PublishedOn is stamped exactly once, at the first false->true transition
	// of IsPublished, and never cleared.
	PublishedOn *time.Time `json:"published_on,omitempty"`
	IsMandatory bool       `json:"is_mandatory" gorm:"not null;default:false"`
	Questions   []Question `json:"questions,omitempty" gorm:"foreignKey:QuestionnaireID"`
}
