package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
	"wellcheck_backend/internal/model"
	"wellcheck_backend/internal/notify"
	"wellcheck_backend/internal/repository"
	"wellcheck_backend/internal/token"
)

const inviteTokenBytes = 20

// newInviteToken returns a 40-hex-char opaque invite token. Generated exactly
// once per invite, at creation.
func newInviteToken() string {
	buf := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return hex.EncodeToString(buf)
}

// partiallyHideEmail masks alternating characters, used in the error shown to
// a caller who tries to accept someone else's invite.
func partiallyHideEmail(email string) string {
	var b strings.Builder
	for i, r := range email {
		if i%2 == 0 {
			b.WriteByte('*')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// InviteService drives the individual account invite lifecycle. An
// individual invite starts in SENT and relies on async email delivery to
// confirm; a failed dispatch attempt demotes it to SENT_FAILED.
type InviteService interface {
	Create(senderID uint, req dto.InviteCreateDTO) error
	Accept(req dto.InviteAcceptDTO) (*dto.InviteAcceptedDTO, error)
}

type inviteService struct {
	inviteRepo repository.InviteRepository
	userRepo   repository.UserRepository
	dispatcher notify.Dispatcher
	codec      *token.Codec
	db         *gorm.DB
}

func NewInviteService(
	inviteRepo repository.InviteRepository,
	userRepo repository.UserRepository,
	dispatcher notify.Dispatcher,
	codec *token.Codec,
	db *gorm.DB,
) InviteService {
	return &inviteService{
		inviteRepo: inviteRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		codec:      codec,
		db:         db,
	}
}

// Create registers a bare account for the receiver and an invite in SENT,
// atomically, then enqueues the invite email fire-and-forget.
func (s *inviteService) Create(senderID uint, req dto.InviteCreateDTO) error {
	sender, err := s.userRepo.FindByID(senderID, false)
	if err != nil {
		return apperr.NotFoundf("sender %d", senderID)
	}
	if _, err := s.userRepo.FindByEmail(req.Email, true); err == nil {
		return apperr.Validationf("user %s already exists", req.Email)
	}

	receiver := model.User{
		Email:     strings.ToLower(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	receiver.IsActive = true

	invite := model.Invite{
		SenderID: senderID,
		Status:   model.InviteSent,
		Token:    newInviteToken(),
	}
	invite.IsActive = true

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&receiver).Error; err != nil {
			return fmt.Errorf("create receiver account: %w", err)
		}
		invite.ReceiverID = receiver.ID
		if err := tx.Create(&invite).Error; err != nil {
			return fmt.Errorf("create invite: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Invite create failed")
		return err
	}

	inviteID := invite.ID
	s.dispatcher.Enqueue(notify.Notification{
		Kind:       notify.KindInvite,
		Recipients: []string{receiver.Email},
		Payload: map[string]string{
			"sender_name":   sender.FullName(),
			"receiver_name": receiver.FullName(),
			"token":         invite.Token,
		},
		Done: func(sendErr error) {
			if sendErr == nil {
				return
			}
			// Dispatch failure is terminal-soft: recorded, never retried here.
			if err := s.inviteRepo.SetStatus(inviteID, model.InviteSentFailed); err != nil {
				log.Error().Err(err).Uint("inviteID", inviteID).Msg("Could not record SENT_FAILED")
			}
		},
	})

	log.Info().Uint("inviteID", invite.ID).Str("email", receiver.Email).Msg("Invite created")
	return nil
}

// Accept redeems an invite exactly once. The receiver sets their password,
// their email is marked verified, and the status moves SENT->ACCEPTED via
// compare-and-set inside one transaction; a concurrent accept loses the CAS
// and gets ErrInvalidState.
func (s *inviteService) Accept(req dto.InviteAcceptDTO) (*dto.InviteAcceptedDTO, error) {
	invite, err := s.inviteRepo.FindByToken(req.Token)
	if err != nil {
		return nil, apperr.ErrInvalidToken
	}
	if invite.Status != model.InviteSent {
		return nil, apperr.InvalidStatef("invite token expired or already used")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		moved, err := s.inviteRepo.TransitionStatus(tx, invite.ID, model.InviteSent, model.InviteAccepted)
		if err != nil {
			return fmt.Errorf("accept invite: %w", err)
		}
		if !moved {
			return apperr.InvalidStatef("invite token expired or already used")
		}
		return tx.Model(&model.User{}).
			Where("id = ?", invite.ReceiverID).
			Updates(map[string]any{
				"password_hash":     hash,
				"is_email_verified": true,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	authToken, err := issueAuthToken(s.codec, invite.ReceiverID, invite.Receiver.Email)
	if err != nil {
		return nil, err
	}

	log.Info().Uint("inviteID", invite.ID).Uint("userID", invite.ReceiverID).Msg("Invite accepted")
	return &dto.InviteAcceptedDTO{
		Message:   "Invite accepted",
		AuthToken: authToken,
	}, nil
}
