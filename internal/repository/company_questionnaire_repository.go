package repository

import (
	"wellcheck_backend/internal/model"

	"gorm.io/gorm"
)

type CompanyQuestionnaireRepository interface {
	Create(cq *model.CompanyQuestionnaire) error
	FindByID(id uint) (*model.CompanyQuestionnaire, error)
	FindByCompanyAndQuestionnaire(companyID, questionnaireID uint) (*model.CompanyQuestionnaire, error)
	FindAllByCompany(companyID uint) ([]model.CompanyQuestionnaire, error)
	// FindActiveForUser lists active company questionnaires of companies the
	// user belongs to.
	FindActiveForUser(userID uint) ([]model.CompanyQuestionnaire, error)
	SetCurrentlyActive(id uint, active bool) error
}

type companyQuestionnaireRepository struct {
	db *gorm.DB
}

func NewCompanyQuestionnaireRepository(db *gorm.DB) CompanyQuestionnaireRepository {
	return &companyQuestionnaireRepository{db: db}
}

func (r *companyQuestionnaireRepository) Create(cq *model.CompanyQuestionnaire) error {
	return r.db.Create(cq).Error
}

func (r *companyQuestionnaireRepository) FindByID(id uint) (*model.CompanyQuestionnaire, error) {
	var cq model.CompanyQuestionnaire
	if err := visible(r.db, false).Preload("Company").Preload("Questionnaire").
		First(&cq, id).Error; err != nil {
		return nil, err
	}
	return &cq, nil
}

func (r *companyQuestionnaireRepository) FindByCompanyAndQuestionnaire(companyID, questionnaireID uint) (*model.CompanyQuestionnaire, error) {
	var cq model.CompanyQuestionnaire
	err := visible(r.db, false).
		Where("company_id = ? AND questionnaire_id = ?", companyID, questionnaireID).
		First(&cq).Error
	if err != nil {
		return nil, err
	}
	return &cq, nil
}

func (r *companyQuestionnaireRepository) FindAllByCompany(companyID uint) ([]model.CompanyQuestionnaire, error) {
	var cqs []model.CompanyQuestionnaire
	err := visible(r.db, false).Preload("Questionnaire").
		Where("company_id = ?", companyID).
		Order("created_at desc").
		Find(&cqs).Error
	return cqs, err
}

func (r *companyQuestionnaireRepository) FindActiveForUser(userID uint) ([]model.CompanyQuestionnaire, error) {
	var cqs []model.CompanyQuestionnaire
	// Joined table also has is_active; both filters must be qualified.
	err := r.db.
		Preload("Company").Preload("Questionnaire").
		Joins("JOIN employees ON employees.company_id = company_questionnaires.company_id").
		Where("company_questionnaires.is_active = ? AND company_questionnaires.currently_active = ?", true, true).
		Where("employees.user_id = ? AND employees.is_active = ?", userID, true).
		Find(&cqs).Error
	return cqs, err
}

func (r *companyQuestionnaireRepository) SetCurrentlyActive(id uint, active bool) error {
	return r.db.Model(&model.CompanyQuestionnaire{}).
		Where("id = ?", id).
		Update("currently_active", active).Error
}
