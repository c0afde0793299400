package repository

import (
	"wellcheck_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionnaireRepository interface {
	Create(questionnaire *model.Questionnaire) error
	FindByID(id uint, includeInactive bool) (*model.Questionnaire, error)
	FindByIDWithQuestions(id uint, includeInactive bool) (*model.Questionnaire, error)
	FindAllPublished() ([]model.Questionnaire, error)
	FindMandatoryPublished() ([]model.Questionnaire, error)
	Update(questionnaire *model.Questionnaire) error
	SoftDelete(id uint) error
	PermanentDelete(id uint) error
}

type questionnaireRepository struct {
	db *gorm.DB
}

func NewQuestionnaireRepository(db *gorm.DB) QuestionnaireRepository {
	return &questionnaireRepository{db: db}
}

func (r *questionnaireRepository) Create(questionnaire *model.Questionnaire) error {
	// Associated questions and their choices are created in the same insert.
	return r.db.Create(questionnaire).Error
}

func (r *questionnaireRepository) FindByID(id uint, includeInactive bool) (*model.Questionnaire, error) {
	var q model.Questionnaire
	if err := visible(r.db, includeInactive).First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionnaireRepository) FindByIDWithQuestions(id uint, includeInactive bool) (*model.Questionnaire, error) {
	var q model.Questionnaire
	err := visible(r.db, includeInactive).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return visible(db, false).Order("questions.\"order\" ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return visible(db, false).Order("choices.id ASC")
		}).
		First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionnaireRepository) FindAllPublished() ([]model.Questionnaire, error) {
	var qs []model.Questionnaire
	err := visible(r.db, false).
		Where("is_published = ?", true).
		Order("created_at desc").
		Find(&qs).Error
	return qs, err
}

func (r *questionnaireRepository) FindMandatoryPublished() ([]model.Questionnaire, error) {
	var qs []model.Questionnaire
	err := visible(r.db, false).
		Where("is_published = ? AND is_mandatory = ?", true, true).
		Order("created_at desc").
		Find(&qs).Error
	return qs, err
}

func (r *questionnaireRepository) Update(questionnaire *model.Questionnaire) error {
	return r.db.Save(questionnaire).Error
}

func (r *questionnaireRepository) SoftDelete(id uint) error {
	return r.db.Model(&model.Questionnaire{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *questionnaireRepository) PermanentDelete(id uint) error {
	return r.db.Unscoped().Delete(&model.Questionnaire{}, id).Error
}
