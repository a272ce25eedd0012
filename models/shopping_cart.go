package models

// ShoppingCartEntry puts a recipe in a user's shopping cart. Unique per
// (user, recipe).
type ShoppingCartEntry struct {
	ID       uint `json:"id" db:"id" gorm:"primaryKey"`
	UserID   uint `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_recipe"`
	RecipeID uint `json:"recipe_id" db:"recipe_id" gorm:"not null;uniqueIndex:idx_cart_user_recipe"`

	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
