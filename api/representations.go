package api

import (
	"github.com/plateful-app/plateful-backend/database"
	"github.com/plateful-app/plateful-backend/models"
)

// UserProfile is the read shape of a user: profile fields plus whether the
// viewer subscribes to them.
type UserProfile struct {
	Email        string `json:"email"`
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeShort is the compact recipe shape returned by relationship toggles
// and embedded in author summaries.
type RecipeShort struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// IngredientAmount is a denormalized ingredient line inside a recipe detail.
type IngredientAmount struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeDetail is the full read shape of a recipe.
type RecipeDetail struct {
	ID               uint               `json:"id"`
	Tags             []models.Tag       `json:"tags"`
	Author           UserProfile        `json:"author"`
	Ingredients      []IngredientAmount `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
}

// AuthorSummary is a subscribed author with embedded recipe summaries.
type AuthorSummary struct {
	UserProfile
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}

// buildUserProfile resolves the is_subscribed flag relative to the viewer;
// anonymous viewers are never subscribed.
func buildUserProfile(subscriptionRepo *database.SubscriptionRepo, viewer *models.User, user models.User) (UserProfile, error) {
	profile := UserProfile{
		Email:     user.Email,
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	if viewer != nil && viewer.ID != user.ID {
		subscribed, err := subscriptionRepo.Exists(viewer.ID, user.ID)
		if err != nil {
			return profile, err
		}
		profile.IsSubscribed = subscribed
	}
	return profile, nil
}

func buildRecipeShort(recipe models.Recipe) RecipeShort {
	return RecipeShort{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}
