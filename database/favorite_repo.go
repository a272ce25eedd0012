package database

import (
	"github.com/plateful-app/plateful-backend/models"
	"gorm.io/gorm"
)

type FavoriteRepo struct {
	db *gorm.DB
}

func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo {
	return &FavoriteRepo{db}
}

// Exists reports whether the (user, recipe) pair is present
func (r *FavoriteRepo) Exists(userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts the pair. The unique index rejects a concurrent duplicate.
func (r *FavoriteRepo) Add(userID, recipeID uint) error {
	return r.db.Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
}

// Delete removes the pair and reports whether anything was deleted
func (r *FavoriteRepo) Delete(userID, recipeID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	return result.RowsAffected > 0, result.Error
}
