package model

// QuestionType is immutable after creation; changing it would invalidate the
// weightage semantics of existing choices.
type QuestionType string

const (
	QuestionMCQ    QuestionType = "MCQ"
	QuestionBinary QuestionType = "BINARY"
	QuestionText   QuestionType = "TEXT"
)

// Scored reports whether answers to this type contribute to the risk score.
func (t QuestionType) Scored() bool {
	return t == QuestionMCQ || t == QuestionBinary
}

type Question struct {
	BaseModel
	QuestionnaireID uint         `json:"questionnaire_id" gorm:"not null;index"`
	Text            string       `json:"text" gorm:"type:text;not null"`
	QuestionType    QuestionType `json:"question_type" gorm:"not null;default:'MCQ'"`
	Order           int          `json:"order" gorm:"not null;default:0"`
	Choices         []Choice     `json:"choices,omitempty" gorm:"foreignKey:QuestionID"`
}
