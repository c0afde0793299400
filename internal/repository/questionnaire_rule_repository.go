package repository

import (
	"wellcheck_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionnaireRuleRepository interface {
	Create(rule *model.QuestionnaireRule) error
	FindByID(id uint) (*model.QuestionnaireRule, error)
	FindAllByCompanyQuestionnaire(companyQuestionnaireID uint) ([]model.QuestionnaireRule, error)
	// NotificationRefs collects the scheduler job handles attached to a
	// company questionnaire. Always reads the current rows, never a snapshot.
	NotificationRefs(companyQuestionnaireID uint) ([]string, error)
	SoftDelete(id uint) error
}

type questionnaireRuleRepository struct {
	db *gorm.DB
}

func NewQuestionnaireRuleRepository(db *gorm.DB) QuestionnaireRuleRepository {
	return &questionnaireRuleRepository{db: db}
}

func (r *questionnaireRuleRepository) Create(rule *model.QuestionnaireRule) error {
	return r.db.Create(rule).Error
}

func (r *questionnaireRuleRepository) FindByID(id uint) (*model.QuestionnaireRule, error) {
	var rule model.QuestionnaireRule
	if err := visible(r.db, false).First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *questionnaireRuleRepository) FindAllByCompanyQuestionnaire(companyQuestionnaireID uint) ([]model.QuestionnaireRule, error) {
	var rules []model.QuestionnaireRule
	err := visible(r.db, false).
		Where("company_questionnaire_id = ?", companyQuestionnaireID).
		Order("created_at desc").
		Find(&rules).Error
	return rules, err
}

func (r *questionnaireRuleRepository) NotificationRefs(companyQuestionnaireID uint) ([]string, error) {
	var refs []string
	err := visible(r.db.Model(&model.QuestionnaireRule{}), false).
		Where("company_questionnaire_id = ?", companyQuestionnaireID).
		Pluck("notification_ref", &refs).Error
	return refs, err
}

func (r *questionnaireRuleRepository) SoftDelete(id uint) error {
	return r.db.Model(&model.QuestionnaireRule{}).Where("id = ?", id).Update("is_active", false).Error
}
