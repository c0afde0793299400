package repository

import (
	"wellcheck_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint, includeInactive bool) (*model.User, error)
	FindByEmail(email string, includeInactive bool) (*model.User, error)
	Update(user *model.User) error
	AllEmails() ([]string, error)
	SoftDelete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint, includeInactive bool) (*model.User, error) {
	var user model.User
	if err := visible(r.db, includeInactive).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string, includeInactive bool) (*model.User, error) {
	var user model.User
	if err := visible(r.db, includeInactive).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) AllEmails() ([]string, error) {
	var emails []string
	err := visible(r.db.Model(&model.User{}), false).Pluck("email", &emails).Error
	return emails, err
}

func (r *userRepository) SoftDelete(id uint) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("is_active", false).Error
}
