package database

import (
	"github.com/plateful-app/plateful-backend/models"
	"gorm.io/gorm"
)

type CartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) *CartRepo {
	return &CartRepo{db}
}

// ShoppingListLine is one consolidated output line: a (name, unit) group
// with its summed amount.
type ShoppingListLine struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// Exists reports whether the (user, recipe) pair is present
func (r *CartRepo) Exists(userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ShoppingCartEntry{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// HasEntries reports whether the user's cart holds any recipe at all
func (r *CartRepo) HasEntries(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ShoppingCartEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts the pair. The unique index rejects a concurrent duplicate.
func (r *CartRepo) Add(userID, recipeID uint) error {
	return r.db.Create(&models.ShoppingCartEntry{UserID: userID, RecipeID: recipeID}).Error
}

// Delete removes the pair and reports whether anything was deleted
func (r *CartRepo) Delete(userID, recipeID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCartEntry{})
	return result.RowsAffected > 0, result.Error
}

// ConsolidatedLines gathers every ingredient line across all recipes in the
// user's cart, grouped by the ingredient's denormalized (name, unit) pair
// with amounts summed. Distinct ingredient rows sharing a name and unit
// merge into one line. Output is ordered by name, then unit.
func (r *CartRepo) ConsolidatedLines(userID uint) ([]ShoppingListLine, error) {
	var lines []ShoppingListLine
	err := r.db.Model(&models.IngredientLine{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_lines.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = ingredient_lines.ingredient_id").
		Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = ingredient_lines.recipe_id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&lines).Error
	return lines, err
}
