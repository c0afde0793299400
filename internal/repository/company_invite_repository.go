package repository

import (
	"wellcheck_backend/internal/model"

	"gorm.io/gorm"
)

type CompanyInviteRepository interface {
	FindByToken(token string) (*model.CompanyInvite, error)
	FindAllByCompany(companyID uint) ([]model.CompanyInvite, error)
	// TransitionStatus moves the invite from one status to another only if it
	// still holds the expected one; pass a transaction handle or nil.
	TransitionStatus(db *gorm.DB, id uint, from, to model.InviteStatus) (bool, error)
}

type companyInviteRepository struct {
	db *gorm.DB
}

func NewCompanyInviteRepository(db *gorm.DB) CompanyInviteRepository {
	return &companyInviteRepository{db: db}
}

func (r *companyInviteRepository) FindByToken(token string) (*model.CompanyInvite, error) {
	var invite model.CompanyInvite
	if err := visible(r.db, false).Preload("Receiver").Preload("Company").
		Where("token = ?", token).First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *companyInviteRepository) FindAllByCompany(companyID uint) ([]model.CompanyInvite, error) {
	var invites []model.CompanyInvite
	err := visible(r.db, false).Preload("Receiver").
		Where("company_id = ?", companyID).
		Order("created_at desc").
		Find(&invites).Error
	return invites, err
}

func (r *companyInviteRepository) TransitionStatus(db *gorm.DB, id uint, from, to model.InviteStatus) (bool, error) {
	if db == nil {
		db = r.db
	}
	res := db.Model(&model.CompanyInvite{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected == 1, res.Error
}
