package repository

import (
	"wellcheck_backend/internal/model"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *model.Employee) error
	Exists(userID, companyID uint) (bool, error)
	IsCompanyAdmin(userID, companyID uint) (bool, error)
	FindAllByCompany(companyID uint) ([]model.Employee, error)
	CountByCompany(companyID uint) (int64, error)
	CompanyEmails(companyID uint) ([]string, error)
	CompanyAdminEmails() ([]string, error)
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(employee *model.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepository) Exists(userID, companyID uint) (bool, error) {
	var count int64
	err := visible(r.db.Model(&model.Employee{}), false).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Count(&count).Error
	return count > 0, err
}

func (r *employeeRepository) IsCompanyAdmin(userID, companyID uint) (bool, error) {
	var count int64
	err := visible(r.db.Model(&model.Employee{}), false).
		Where("user_id = ? AND company_id = ? AND is_company_admin = ?", userID, companyID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *employeeRepository) FindAllByCompany(companyID uint) ([]model.Employee, error) {
	var employees []model.Employee
	err := visible(r.db, false).
		Preload("User").
		Where("company_id = ?", companyID).
		Order("created_at desc").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) CountByCompany(companyID uint) (int64, error) {
	var count int64
	err := visible(r.db.Model(&model.Employee{}), false).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

// The joined users table carries its own is_active column, so the
// soft-delete filter must name the table explicitly.
func (r *employeeRepository) CompanyEmails(companyID uint) ([]string, error) {
	var emails []string
	err := r.db.Model(&model.Employee{}).
		Joins("JOIN users ON users.id = employees.user_id").
		Where("employees.is_active = ? AND employees.company_id = ?", true, companyID).
		Pluck("users.email", &emails).Error
	return emails, err
}

func (r *employeeRepository) CompanyAdminEmails() ([]string, error) {
	var emails []string
	err := r.db.Model(&model.Employee{}).
		Joins("JOIN users ON users.id = employees.user_id").
		Where("employees.is_active = ? AND employees.is_company_admin = ?", true, true).
		Pluck("users.email", &emails).Error
	return emails, err
}
