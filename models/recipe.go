package models

import "time"

// MaxRecipeTextLength caps the recipe description, counted in characters,
// not bytes.
const MaxRecipeTextLength = 3000

// Recipe is the aggregate root of the write path: it exclusively owns its
// ingredient lines, which are cascade-deleted with it. The author is fixed
// at creation and immutable thereafter.
type Recipe struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey"`
	Name        string    `json:"name" db:"name" gorm:"type:varchar(200);not null"`
	Text        string    `json:"text" db:"text" gorm:"type:text;not null"`
	CookingTime int       `json:"cooking_time" db:"cooking_time" gorm:"not null"`
	Image       string    `json:"image" db:"image" gorm:"type:text"`
	AuthorID    uint      `json:"-" db:"author_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"-" db:"created_at"`

	Author          User             `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Tags            []Tag            `json:"-" gorm:"many2many:recipe_tags"`
	IngredientLines []IngredientLine `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// IngredientLine weights one ingredient inside one recipe. Lines are
// replaced wholesale when the parent recipe is updated, so their row ids are
// not stable across edits.
type IngredientLine struct {
	ID           uint `json:"id" db:"id" gorm:"primaryKey"`
	RecipeID     uint `json:"recipe_id" db:"recipe_id" gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint `json:"ingredient_id" db:"ingredient_id" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int  `json:"amount" db:"amount" gorm:"not null"`

	Ingredient Ingredient `json:"-" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}
