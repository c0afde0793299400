package repository

import (
	"wellcheck_backend/internal/model"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(company *model.Company) error
	FindByID(id uint, includeInactive bool) (*model.Company, error)
	FindAll(includeInactive bool) ([]model.Company, error)
	Update(company *model.Company) error
	Count() (int64, error)
	SoftDelete(id uint) error
	PermanentDelete(id uint) error
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(company *model.Company) error {
	return r.db.Create(company).Error
}

func (r *companyRepository) FindByID(id uint, includeInactive bool) (*model.Company, error) {
	var company model.Company
	if err := visible(r.db, includeInactive).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindAll(includeInactive bool) ([]model.Company, error) {
	var companies []model.Company
	err := visible(r.db, includeInactive).Order("created_at desc").Find(&companies).Error
	return companies, err
}

func (r *companyRepository) Update(company *model.Company) error {
	return r.db.Save(company).Error
}

func (r *companyRepository) Count() (int64, error) {
	var count int64
	err := visible(r.db.Model(&model.Company{}), false).Count(&count).Error
	return count, err
}

func (r *companyRepository) SoftDelete(id uint) error {
	return r.db.Model(&model.Company{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *companyRepository) PermanentDelete(id uint) error {
	return r.db.Unscoped().Delete(&model.Company{}, id).Error
}
