package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/notify"
	"wellcheck_backend/internal/repository"
)

// CompanyService manages company registration and membership. The creator of
// a company becomes its first admin employee.
type CompanyService interface {
	Create(creatorID uint, req dto.CompanyCreateDTO) (*dto.CompanyDTO, error)
	Get(id uint) (*dto.CompanyDTO, error)
	List() ([]dto.CompanyDTO, error)
	Count() (int64, error)
	Verify(id uint) (*dto.CompanyDTO, error)
	Employees(companyID uint) ([]dto.EmployeeDTO, error)
	SoftDelete(id uint) error
	PermanentDelete(id uint) error
}

type companyService struct {
	companyRepo  repository.CompanyRepository
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
	dispatcher   notify.Dispatcher
	db           *gorm.DB
}

func NewCompanyService(
	companyRepo repository.CompanyRepository,
	employeeRepo repository.EmployeeRepository,
	userRepo repository.UserRepository,
	dispatcher notify.Dispatcher,
	db *gorm.DB,
) CompanyService {
	return &companyService{
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
		db:           db,
	}
}

func (s *companyService) Create(creatorID uint, req dto.CompanyCreateDTO) (*dto.CompanyDTO, error) {
	if _, err := s.userRepo.FindByID(creatorID, false); err != nil {
		return nil, apperr.NotFoundf("user %d", creatorID)
	}

	company := model.Company{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
		Phone:   req.Phone,
		About:   req.About,
	}
	company.IsActive = true

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&company).Error; err != nil {
			return fmt.Errorf("create company: %w", err)
		}
		admin := model.Employee{
			UserID:         creatorID,
			CompanyID:      company.ID,
			IsCompanyAdmin: true,
		}
		admin.IsActive = true
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("create admin membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("companyID", company.ID).Str("name", company.Name).Uint("creatorID", creatorID).Msg("Company created")
	return companyToDTO(&company)
}

func (s *companyService) Get(id uint) (*dto.CompanyDTO, error) {
	company, err := s.companyRepo.FindByID(id, false)
	if err != nil {
		return nil, apperr.NotFoundf("company %d", id)
	}
	return companyToDTO(company)
}

func (s *companyService) List() ([]dto.CompanyDTO, error) {
	companies, err := s.companyRepo.FindAll(false)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	dtos := make([]dto.CompanyDTO, 0, len(companies))
	for i := range companies {
		d, err := companyToDTO(&companies[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *d)
	}
	return dtos, nil
}

func (s *companyService) Count() (int64, error) {
	return s.companyRepo.Count()
}

// Verify marks a company verified and notifies its employees. Verifying an
// already verified company is a no-op.
func (s *companyService) Verify(id uint) (*dto.CompanyDTO, error) {
	company, err := s.companyRepo.FindByID(id, false)
	if err != nil {
		return nil, apperr.NotFoundf("company %d", id)
	}
	if !company.IsVerified {
		company.IsVerified = true
		if err := s.companyRepo.Update(company); err != nil {
			return nil, fmt.Errorf("verify company: %w", err)
		}
		emails, err := s.employeeRepo.CompanyEmails(id)
		if err != nil {
			return nil, fmt.Errorf("collect employee emails: %w", err)
		}
		if len(emails) > 0 {
			s.dispatcher.Enqueue(notify.Notification{
				Kind:       notify.KindCompanyVerified,
				Recipients: emails,
				Payload:    map[string]string{"company_name": company.Name},
			})
		}
		log.Info().Uint("companyID", id).Msg("Company verified")
	}
	return companyToDTO(company)
}

func (s *companyService) Employees(companyID uint) ([]dto.EmployeeDTO, error) {
	if _, err := s.companyRepo.FindByID(companyID, false); err != nil {
		return nil, apperr.NotFoundf("company %d", companyID)
	}
	employees, err := s.employeeRepo.FindAllByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	dtos := make([]dto.EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, dto.EmployeeDTO{
			ID:             e.ID,
			UserID:         e.UserID,
			Email:          e.User.Email,
			FirstName:      e.User.FirstName,
			LastName:       e.User.LastName,
			IsCompanyAdmin: e.IsCompanyAdmin,
		})
	}
	return dtos, nil
}

func (s *companyService) SoftDelete(id uint) error {
	if _, err := s.companyRepo.FindByID(id, false); err != nil {
		return apperr.NotFoundf("company %d", id)
	}
	return s.companyRepo.SoftDelete(id)
}

func (s *companyService) PermanentDelete(id uint) error {
	if _, err := s.companyRepo.FindByID(id, true); err != nil {
		return apperr.NotFoundf("company %d", id)
	}
	return s.companyRepo.PermanentDelete(id)
}

func companyToDTO(company *model.Company) (*dto.CompanyDTO, error) {
	var out dto.CompanyDTO
	if err := copier.Copy(&out, company); err != nil {
		return nil, fmt.Errorf("map company: %w", err)
	}
	return &out, nil
}
