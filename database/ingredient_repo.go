package database

import (
	"errors"

	"github.com/plateful-app/plateful-backend/models"
	"gorm.io/gorm"
)

type IngredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) *IngredientRepo {
	return &IngredientRepo{db}
}

// FindAll returns ingredients, optionally filtered by a case-insensitive
// name prefix.
func (r *IngredientRepo) FindAll(namePrefix string) ([]*models.Ingredient, error) {
	var ingredients []*models.Ingredient
	query := r.db.Order("name")
	if namePrefix != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?) ESCAPE '\\'", escapeLike(namePrefix)+"%")
	}
	err := query.Find(&ingredients).Error
	return ingredients, err
}

// FindByID returns an ingredient by its ID, or nil when absent
func (r *IngredientRepo) FindByID(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.First(&ingredient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// FindByIDs returns the ingredients matching the given ids
func (r *IngredientRepo) FindByIDs(ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.Find(&ingredients, ids).Error
	return ingredients, err
}

// AddBatch bulk-inserts catalog rows. There is no dedup: reloading the same
// file duplicates rows, matching the one-shot loader semantics.
func (r *IngredientRepo) AddBatch(ingredients []models.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return r.db.Create(&ingredients).Error
}

// escapeLike neutralizes LIKE metacharacters in user-supplied prefixes.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
