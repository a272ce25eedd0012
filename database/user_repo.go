package database

import (
	"errors"

	"github.com/plateful-app/plateful-backend/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// Add inserts a new user into the database
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID returns a user by its ID, or nil when absent
func (r *UserRepo) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns a user by email, or nil when absent
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll returns a page of users ordered by id
func (r *UserRepo) FindAll(page, limit int) ([]*models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*models.User
	err := r.db.Order("id").Limit(limit).Offset((page - 1) * limit).Find(&users).Error
	return users, total, err
}

// FindSubscribedAuthors returns a page of authors the subscriber follows,
// ordered by author id.
func (r *UserRepo) FindSubscribedAuthors(subscriberID uint, page, limit int) ([]*models.User, int64, error) {
	base := r.db.Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []*models.User
	err := base.Order("users.id").Limit(limit).Offset((page - 1) * limit).Find(&authors).Error
	return authors, total, err
}
