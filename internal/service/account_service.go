package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/notify"
	"wellcheck_backend/internal/repository"
	"wellcheck_backend/internal/token"
)

const (
	authTokenTTL    = 24 * time.Hour
	oneTimeTokenTTL = time.Hour
	purposeVerify   = "verify_email"
	purposeReset    = "reset_password"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// issueAuthToken mints a session token for an authenticated user.
func issueAuthToken(codec *token.Codec, userID uint, email string) (string, error) {
	return codec.Issue(map[string]any{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(authTokenTTL).Unix(),
	})
}

// issuePurposeToken mints a short-lived single-purpose token (email
// verification, password reset). The purpose claim keeps one kind of token
// from being redeemed as the other.
func issuePurposeToken(codec *token.Codec, userID uint, purpose string) (string, error) {
	return codec.Issue(map[string]any{
		"user_id": userID,
		"purpose": purpose,
		"exp":     time.Now().Add(oneTimeTokenTTL).Unix(),
	})
}

// AccountService owns self-service registration, login and the email
// verification / password reset loops.
type AccountService interface {
	Register(req dto.RegisterDTO) (*dto.UserDTO, error)
	Login(req dto.LoginDTO) (*dto.AuthTokenDTO, error)
	VerifyEmail(tokenStr string) (string, error)
	RequestPasswordReset(req dto.PasswordResetRequestDTO) error
	ResetPassword(req dto.PasswordResetDTO) error
	GetProfile(userID uint) (*dto.UserDTO, error)
}

type accountService struct {
	userRepo   repository.UserRepository
	dispatcher notify.Dispatcher
	codec      *token.Codec
}

func NewAccountService(userRepo repository.UserRepository, dispatcher notify.Dispatcher, codec *token.Codec) AccountService {
	return &accountService{userRepo: userRepo, dispatcher: dispatcher, codec: codec}
}

func (s *accountService) Register(req dto.RegisterDTO) (*dto.UserDTO, error) {
	email := strings.ToLower(req.Email)
	if _, err := s.userRepo.FindByEmail(email, true); err == nil {
		return nil, apperr.Validationf("user %s already exists", email)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Email:        email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	user.IsActive = true
	if err := s.userRepo.Create(&user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	verifyToken, err := issuePurposeToken(s.codec, user.ID, purposeVerify)
	if err != nil {
		return nil, err
	}
	s.dispatcher.Enqueue(notify.Notification{
		Kind:       notify.KindAccountVerification,
		Recipients: []string{user.Email},
		Payload: map[string]string{
			"receiver_name": user.FullName(),
			"token":         verifyToken,
		},
	})

	log.Info().Uint("userID", user.ID).Str("email", user.Email).Msg("User registered")

	var out dto.UserDTO
	if err := copier.Copy(&out, &user); err != nil {
		return nil, fmt.Errorf("map user: %w", err)
	}
	return &out, nil
}

func (s *accountService) Login(req dto.LoginDTO) (*dto.AuthTokenDTO, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(req.Email), false)
	if err != nil || !CheckPassword(user.PasswordHash, req.Password) {
		// One message for both unknown email and bad password.
		return nil, apperr.Validationf("invalid email or password")
	}

	authToken, err := issueAuthToken(s.codec, user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.AuthTokenDTO{UserID: user.ID, AuthToken: authToken}, nil
}

// redeemPurposeToken verifies the token and checks its purpose claim,
// returning the subject user. Every failure mode is ErrInvalidToken.
func (s *accountService) redeemPurposeToken(tokenStr, purpose string) (*model.User, error) {
	claims, err := s.codec.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if p, _ := claims["purpose"].(string); p != purpose {
		return nil, apperr.ErrInvalidToken
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apperr.ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(uint(rawID), false)
	if err != nil {
		return nil, apperr.ErrInvalidToken
	}
	return user, nil
}

func (s *accountService) VerifyEmail(tokenStr string) (string, error) {
	user, err := s.redeemPurposeToken(tokenStr, purposeVerify)
	if err != nil {
		return "", err
	}
	if user.IsEmailVerified {
		return "Email already verified", nil
	}

	user.IsEmailVerified = true
	if err := s.userRepo.Update(user); err != nil {
		return "", fmt.Errorf("mark email verified: %w", err)
	}

	s.dispatcher.Enqueue(notify.Notification{
		Kind:       notify.KindWelcome,
		Recipients: []string{user.Email},
		Payload:    map[string]string{"name": user.FullName()},
	})
	log.Info().Uint("userID", user.ID).Msg("Email verified")
	return "Email verified", nil
}

// RequestPasswordReset never reveals whether the email exists; an unknown
// address is logged and silently accepted.
func (s *accountService) RequestPasswordReset(req dto.PasswordResetRequestDTO) error {
	user, err := s.userRepo.FindByEmail(strings.ToLower(req.Email), false)
	if err != nil {
		log.Warn().Str("email", req.Email).Msg("Password reset requested for unknown email")
		return nil
	}

	resetToken, err := issuePurposeToken(s.codec, user.ID, purposeReset)
	if err != nil {
		return err
	}
	s.dispatcher.Enqueue(notify.Notification{
		Kind:       notify.KindPasswordReset,
		Recipients: []string{user.Email},
		Payload: map[string]string{
			"receiver_name": user.FullName(),
			"token":         resetToken,
		},
	})
	return nil
}

func (s *accountService) ResetPassword(req dto.PasswordResetDTO) error {
	user, err := s.redeemPurposeToken(req.Token, purposeReset)
	if err != nil {
		return err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	log.Info().Uint("userID", user.ID).Msg("Password reset")
	return nil
}

func (s *accountService) GetProfile(userID uint) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID, false)
	if err != nil {
		return nil, apperr.NotFoundf("user %d", userID)
	}
	var out dto.UserDTO
	if err := copier.Copy(&out, user); err != nil {
		return nil, fmt.Errorf("map user: %w", err)
	}
	return &out, nil
}
