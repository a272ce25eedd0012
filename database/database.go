package database

import (
	"github.com/plateful-app/plateful-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	userRepo         *UserRepo
	tagRepo          *TagRepo
	ingredientRepo   *IngredientRepo
	recipeRepo       *RecipeRepo
	favoriteRepo     *FavoriteRepo
	cartRepo         *CartRepo
	subscriptionRepo *SubscriptionRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:         NewUserRepo(db),
		tagRepo:          NewTagRepo(db),
		ingredientRepo:   NewIngredientRepo(db),
		recipeRepo:       NewRecipeRepo(db),
		favoriteRepo:     NewFavoriteRepo(db),
		cartRepo:         NewCartRepo(db),
		subscriptionRepo: NewSubscriptionRepo(db),
	}
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.IngredientLine{},
		&models.Favorite{},
		&models.ShoppingCartEntry{},
		&models.Subscription{},
	)
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) IngredientRepo() *IngredientRepo {
	return d.ingredientRepo
}

func (d Database) RecipeRepo() *RecipeRepo {
	return d.recipeRepo
}

func (d Database) FavoriteRepo() *FavoriteRepo {
	return d.favoriteRepo
}

func (d Database) CartRepo() *CartRepo {
	return d.cartRepo
}

func (d Database) SubscriptionRepo() *SubscriptionRepo {
	return d.subscriptionRepo
}
