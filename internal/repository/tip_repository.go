package repository

import (
	"wellcheck_backend/internal/model"

	"gorm.io/gorm"
)

type TipRepository interface {
	Create(tip *model.Tip) error
	FindByQuestionnaireAndRisk(questionnaireID uint, riskLevel model.RiskLevel) ([]model.Tip, error)
}

type tipRepository struct {
	db *gorm.DB
}

func NewTipRepository(db *gorm.DB) TipRepository {
	return &tipRepository{db: db}
}

func (r *tipRepository) Create(tip *model.Tip) error {
	return r.db.Create(tip).Error
}

func (r *tipRepository) FindByQuestionnaireAndRisk(questionnaireID uint, riskLevel model.RiskLevel) ([]model.Tip, error) {
	var tips []model.Tip
	err := visible(r.db, false).
		Where("questionnaire_id = ? AND risk_level = ?", questionnaireID, riskLevel).
		Order("id ASC").
		Find(&tips).Error
	return tips, err
}
