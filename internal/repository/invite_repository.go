package repository

import (
	"wellcheck_backend/internal/model"

	"gorm.io/gorm"
)

type InviteRepository interface {
	Create(invite *model.Invite) error
	FindByToken(token string) (*model.Invite, error)
	// TransitionStatus performs a compare-and-set on the invite status and
	// reports whether the row was actually moved. Runs against tx when inside
	// a transaction.
	TransitionStatus(db *gorm.DB, id uint, from, to model.InviteStatus) (bool, error)
	SetStatus(id uint, status model.InviteStatus) error
}

type inviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) Create(invite *model.Invite) error {
	return r.db.Create(invite).Error
}

func (r *inviteRepository) FindByToken(token string) (*model.Invite, error) {
	var invite model.Invite
	if err := visible(r.db, false).Preload("Receiver").Preload("Sender").
		Where("token = ?", token).First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) TransitionStatus(db *gorm.DB, id uint, from, to model.InviteStatus) (bool, error) {
	if db == nil {
		db = r.db
	}
	res := db.Model(&model.Invite{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected == 1, res.Error
}

func (r *inviteRepository) SetStatus(id uint, status model.InviteStatus) error {
	return r.db.Model(&model.Invite{}).Where("id = ?", id).Update("status", status).Error
}
