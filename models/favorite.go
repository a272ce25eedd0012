package models

// Favorite marks a recipe as favorited by a user. The composite unique
// index is the only defense against concurrent duplicate inserts.
type Favorite struct {
	ID       uint `json:"id" db:"id" gorm:"primaryKey"`
	UserID   uint `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID uint `json:"recipe_id" db:"recipe_id" gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`

	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
