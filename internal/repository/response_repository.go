package repository

import (
	"time"

	"wellcheck_backend/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository interface {
	FindByIDWithDetails(id uint) (*model.QuestionnaireResponse, error)
	FindAllByUser(userID uint) ([]model.QuestionnaireResponse, error)
	// AnsweredQuestionnaireIDs lists questionnaires the user has already
	// submitted, optionally narrowed to a sponsoring company.
	AnsweredQuestionnaireIDs(userID uint, companyID *uint) ([]uint, error)
	// CountDistinctRespondents counts users with at least one submission for
	// the questionnaire sponsored by the company on or after the cutoff.
	CountDistinctRespondents(companyID, questionnaireID uint, since time.Time) (int64, error)
	CountLineRows(responseID uint) (int64, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) FindByIDWithDetails(id uint) (*model.QuestionnaireResponse, error) {
	var resp model.QuestionnaireResponse
	err := visible(r.db, false).
		Preload("Questionnaire").
		Preload("QuestionResponses").
		Preload("QuestionResponses.Question").
		First(&resp, id).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *responseRepository) FindAllByUser(userID uint) ([]model.QuestionnaireResponse, error) {
	var resps []model.QuestionnaireResponse
	err := visible(r.db, false).
		Preload("Questionnaire").
		Preload("Company").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&resps).Error
	return resps, err
}

func (r *responseRepository) AnsweredQuestionnaireIDs(userID uint, companyID *uint) ([]uint, error) {
	query := visible(r.db.Model(&model.QuestionnaireResponse{}), false).
		Where("user_id = ?", userID)
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}
	var ids []uint
	err := query.Distinct().Pluck("questionnaire_id", &ids).Error
	return ids, err
}

func (r *responseRepository) CountDistinctRespondents(companyID, questionnaireID uint, since time.Time) (int64, error) {
	var count int64
	err := visible(r.db.Model(&model.QuestionnaireResponse{}), false).
		Where("company_id = ? AND questionnaire_id = ? AND created_at >= ?", companyID, questionnaireID, since).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

func (r *responseRepository) CountLineRows(responseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.QuestionResponse{}).
		Where("questionnaire_response_id = ?", responseID).
		Count(&count).Error
	return count, err
}
