package database

import (
	"github.com/plateful-app/plateful-backend/models"
	"gorm.io/gorm"
)

type SubscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db}
}

// Exists reports whether the subscriber already follows the author
func (r *SubscriptionRepo) Exists(subscriberID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts the pair. The unique index rejects a concurrent duplicate.
func (r *SubscriptionRepo) Add(subscriberID, authorID uint) error {
	return r.db.Create(&models.Subscription{SubscriberID: subscriberID, AuthorID: authorID}).Error
}

// Delete removes the pair and reports whether anything was deleted
func (r *SubscriptionRepo) Delete(subscriberID, authorID uint) (bool, error) {
	result := r.db.Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Delete(&models.Subscription{})
	return result.RowsAffected > 0, result.Error
}
