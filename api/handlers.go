package api

import (
	"time"

	"github.com/plateful-app/plateful-backend/config"
	"github.com/plateful-app/plateful-backend/database"
	"github.com/plateful-app/plateful-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, c map[string]string) *routeHandlers {
	tokens := services.NewTokenIssuer(
		config.GetString(c, config.KeyJWTSecret, "insecure-dev-secret"),
		time.Duration(config.GetInt(c, config.KeyTokenTTLHours, 24))*time.Hour,
	)

	return &routeHandlers{
		tokens:            tokens,
		tagHandler:        newTagHandler(database.TagRepo()),
		ingredientHandler: newIngredientHandler(database.IngredientRepo()),
		recipeHandler: newRecipeHandler(
			database,
			config.GetString(c, config.KeyMediaRoot, "media"),
			config.GetString(c, config.KeyPDFFontPath, ""),
		),
		userHandler: newUserHandler(database, tokens),
	}
}
