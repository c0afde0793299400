package service

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/notify"
	"wellcheck_backend/internal/repository"
)

const initialPasswordLength = 12

var passwordLetters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func randomPassword() string {
	var b strings.Builder
	for i := 0; i < initialPasswordLength; i++ {
		b.WriteRune(passwordLetters[rand.Intn(len(passwordLetters))])
	}
	return b.String()
}

// CompanyInviteService drives the company invite lifecycle. A company invite
// starts in PENDING until the email-dispatch attempt resolves it to SENT or
// SENT_FAILED; acceptance atomically creates the Employee membership.
type CompanyInviteService interface {
	Create(companyID, callerID uint, req dto.CompanyInviteCreateDTO) (string, error)
	Accept(callerID uint, req dto.CompanyInviteActionDTO) (string, error)
	Cancel(callerID uint, req dto.CompanyInviteActionDTO) (string, error)
	List(companyID uint) ([]dto.CompanyInviteDTO, error)
}

type companyInviteService struct {
	inviteRepo   repository.CompanyInviteRepository
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
	companyRepo  repository.CompanyRepository
	dispatcher   notify.Dispatcher
	db           *gorm.DB
}

func NewCompanyInviteService(
	inviteRepo repository.CompanyInviteRepository,
	userRepo repository.UserRepository,
	employeeRepo repository.EmployeeRepository,
	companyRepo repository.CompanyRepository,
	dispatcher notify.Dispatcher,
	db *gorm.DB,
) CompanyInviteService {
	return &companyInviteService{
		inviteRepo:   inviteRepo,
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		dispatcher:   dispatcher,
		db:           db,
	}
}

func (s *companyInviteService) Create(companyID, callerID uint, req dto.CompanyInviteCreateDTO) (string, error) {
	company, err := s.companyRepo.FindByID(companyID, false)
	if err != nil {
		return "", apperr.NotFoundf("company %d", companyID)
	}

	isAdmin, err := s.employeeRepo.IsCompanyAdmin(callerID, companyID)
	if err != nil {
		return "", fmt.Errorf("check admin privilege: %w", err)
	}
	if !isAdmin {
		return "", apperr.Validationf("admin privilege required to invite employees")
	}

	email := strings.ToLower(req.ReceiverEmail)
	receiver, findErr := s.userRepo.FindByEmail(email, false)
	if findErr == nil {
		alreadyEmployee, err := s.employeeRepo.Exists(receiver.ID, companyID)
		if err != nil {
			return "", fmt.Errorf("check membership: %w", err)
		}
		if alreadyEmployee {
			return "", apperr.Validationf("user already an employee of this company")
		}
	}

	// Unknown receivers get an account with a generated initial password,
	// included in the invite email. Account and invite are created in one
	// transaction so an invite failure never strands an undelivered account.
	initialPassword := ""
	invite := model.CompanyInvite{
		CompanyID: companyID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Status:    model.InvitePending,
		Token:     newInviteToken(),
	}
	invite.IsActive = true

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if findErr != nil {
			initialPassword = randomPassword()
			hash, err := HashPassword(initialPassword)
			if err != nil {
				return fmt.Errorf("hash initial password: %w", err)
			}
			newUser := &model.User{
				Email:        email,
				FirstName:    req.FirstName,
				LastName:     req.LastName,
				PasswordHash: hash,
			}
			newUser.IsActive = true
			if err := tx.Create(newUser).Error; err != nil {
				return fmt.Errorf("create invited account: %w", err)
			}
			receiver = newUser
		}
		invite.ReceiverID = receiver.ID
		if err := tx.Create(&invite).Error; err != nil {
			return fmt.Errorf("create company invite: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	payload := map[string]string{
		"company_name":  company.Name,
		"receiver_name": req.FirstName,
		"token":         invite.Token,
	}
	if initialPassword != "" {
		payload["password"] = initialPassword
	}

	inviteID := invite.ID
	s.dispatcher.Enqueue(notify.Notification{
		Kind:       notify.KindCompanyInvite,
		Recipients: []string{email},
		Payload:    payload,
		Done: func(sendErr error) {
			// The dispatch attempt resolves PENDING. Failures are caught here
			// and recorded, never propagated to the inviting caller.
			to := model.InviteSent
			if sendErr != nil {
				to = model.InviteSentFailed
			}
			if _, err := s.inviteRepo.TransitionStatus(nil, inviteID, model.InvitePending, to); err != nil {
				log.Error().Err(err).Uint("inviteID", inviteID).Msg("Could not resolve invite dispatch status")
			}
		},
	})

	log.Info().Uint("inviteID", invite.ID).Uint("companyID", companyID).Str("email", email).Msg("Company invite created")
	return fmt.Sprintf("Company invite sent to %s", req.FirstName), nil
}

// resolve loads and pre-validates an invite for accept/cancel.
func (s *companyInviteService) resolve(callerID uint, tokenStr string) (*model.CompanyInvite, error) {
	invite, err := s.inviteRepo.FindByToken(tokenStr)
	if err != nil {
		return nil, apperr.ErrInvalidToken
	}

	alreadyEmployee, err := s.employeeRepo.Exists(invite.ReceiverID, invite.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if alreadyEmployee {
		return nil, apperr.Validationf("user already an employee of this company")
	}

	if invite.ReceiverID != callerID {
		return nil, fmt.Errorf(
			"this invite belongs to %s: %w",
			partiallyHideEmail(invite.Receiver.Email), apperr.ErrWrongRecipient,
		)
	}
	if invite.Status != model.InviteSent {
		return nil, apperr.InvalidStatef("invite token expired or already used")
	}
	return invite, nil
}

// Accept flips SENT->ACCEPTED and creates the Employee row in one
// transaction. The status flip is a compare-and-set, so of two concurrent
// accepts exactly one succeeds and exactly one membership row is created.
func (s *companyInviteService) Accept(callerID uint, req dto.CompanyInviteActionDTO) (string, error) {
	invite, err := s.resolve(callerID, req.Token)
	if err != nil {
		return "", err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		moved, err := s.inviteRepo.TransitionStatus(tx, invite.ID, model.InviteSent, model.InviteAccepted)
		if err != nil {
			return fmt.Errorf("accept company invite: %w", err)
		}
		if !moved {
			return apperr.InvalidStatef("invite token expired or already used")
		}
		employee := model.Employee{
			UserID:    invite.ReceiverID,
			CompanyID: invite.CompanyID,
		}
		employee.IsActive = true
		if err := tx.Create(&employee).Error; err != nil {
			return fmt.Errorf("create employee membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	log.Info().Uint("inviteID", invite.ID).Uint("companyID", invite.CompanyID).Uint("userID", callerID).Msg("Company invite accepted")
	return fmt.Sprintf("Successfully joined %s", invite.Company.Name), nil
}

func (s *companyInviteService) Cancel(callerID uint, req dto.CompanyInviteActionDTO) (string, error) {
	invite, err := s.inviteRepo.FindByToken(req.Token)
	if err != nil {
		return "", apperr.ErrInvalidToken
	}

	isAdmin, err := s.employeeRepo.IsCompanyAdmin(callerID, invite.CompanyID)
	if err != nil {
		return "", fmt.Errorf("check admin privilege: %w", err)
	}
	if !isAdmin && invite.ReceiverID != callerID {
		return "", apperr.Validationf("only the receiver or a company admin may cancel an invite")
	}

	moved, err := s.inviteRepo.TransitionStatus(nil, invite.ID, model.InviteSent, model.InviteCancelled)
	if err != nil {
		return "", fmt.Errorf("cancel company invite: %w", err)
	}
	if !moved {
		return "", apperr.InvalidStatef("invite is not in SENT state")
	}

	log.Info().Uint("inviteID", invite.ID).Msg("Company invite cancelled")
	return fmt.Sprintf("Invite cancelled for %s", invite.Company.Name), nil
}

func (s *companyInviteService) List(companyID uint) ([]dto.CompanyInviteDTO, error) {
	invites, err := s.inviteRepo.FindAllByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("list company invites: %w", err)
	}
	dtos := make([]dto.CompanyInviteDTO, 0, len(invites))
	for _, inv := range invites {
		dtos = append(dtos, dto.CompanyInviteDTO{
			ID:        inv.ID,
			Email:     inv.Receiver.Email,
			FirstName: inv.FirstName,
			LastName:  inv.LastName,
			Status:    string(inv.Status),
		})
	}
	return dtos, nil
}
