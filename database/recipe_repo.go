package database

import (
	"errors"

	"github.com/plateful-app/plateful-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) *RecipeRepo {
	return &RecipeRepo{db}
}

// RecipeFilter narrows a recipe listing. The favorited/in-cart filters only
// apply for an authenticated user, so their user ids are optional.
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    *uint
	FavoritedBy *uint
	InCartOf    *uint
	Page        int
	Limit       int
}

// FindByID returns a recipe with its tags, author and denormalized
// ingredient lines, or nil when absent.
func (r *RecipeRepo) FindByID(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.
		Preload("Tags").
		Preload("Author").
		Preload("IngredientLines.Ingredient").
		First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FindAll returns a filtered page of recipes, newest first, with the total
// match count.
func (r *RecipeRepo) FindAll(filter RecipeFilter) ([]*models.Recipe, int64, error) {
	query := r.db.Model(&models.Recipe{})

	if len(filter.TagSlugs) > 0 {
		// Subquery keeps a multi-tag match as one row and keeps Count honest
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if filter.FavoritedBy != nil {
		query = query.Joins(
			"JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?",
			*filter.FavoritedBy,
		)
	}
	if filter.InCartOf != nil {
		query = query.Joins(
			"JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipes.id AND shopping_cart_entries.user_id = ?",
			*filter.InCartOf,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []*models.Recipe
	err := query.
		Preload("Tags").
		Preload("Author").
		Preload("IngredientLines.Ingredient").
		Order("recipes.id DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&recipes).Error
	return recipes, total, err
}

// FindByAuthor returns the author's recipes, newest first, capped at limit
// when limit > 0.
func (r *RecipeRepo) FindByAuthor(authorID uint, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	query := r.db.Where("author_id = ?", authorID).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&recipes).Error
	return recipes, err
}

// CountByAuthor returns the number of recipes owned by the author
func (r *RecipeRepo) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// Create persists the recipe, its full tag set and its ingredient lines in
// one transaction.
func (r *RecipeRepo) Create(recipe *models.Recipe, tags []models.Tag, lines []models.IngredientLine) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}
		recipe.IngredientLines = lines
		return nil
	})
}

// Update saves the recipe fields, replaces the tag set and replaces all
// ingredient lines (delete and re-insert, not diff) in one transaction.
// Line row ids are not preserved across edits.
func (r *RecipeRepo) Update(recipe *models.Recipe, tags []models.Tag, lines []models.IngredientLine) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientLine{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].ID = 0
			lines[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}
		recipe.IngredientLines = lines
		return nil
	})
}

// Delete removes a recipe and everything hanging off it: ingredient lines,
// tag links, favorites and cart entries.
func (r *RecipeRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.IngredientLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
}
