package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes sets up all routes, split into read routes that only
// identify the viewer and write routes that require authentication.
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		// Read routes: anonymous access allowed, viewer resolved when a
		// token is present
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.identify)
			r.Use(ColoredHTTPLoggingMiddleware)

			r.Get("/tags", handlers.tagHandler.getAllTags())
			r.Get("/tags/{tagID}", handlers.tagHandler.getTag())

			r.Get("/ingredients", handlers.ingredientHandler.getAllIngredients())
			r.Get("/ingredients/{ingredientID}", handlers.ingredientHandler.getIngredient())

			r.Get("/recipes", handlers.recipeHandler.getAllRecipes())
			r.Get("/recipes/{recipeID}", handlers.recipeHandler.getRecipe())

			r.Post("/users", handlers.userHandler.register())
			r.Get("/users", handlers.userHandler.getAllUsers())
			r.Get("/users/{userID}", handlers.userHandler.getUser())
			r.Post("/auth/token/login", handlers.userHandler.login())
		})

		// Write routes: authentication required
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Use(ColoredHTTPLoggingMiddleware)

			r.Post("/tags", handlers.tagHandler.createTag())
			r.Patch("/tags/{tagID}", handlers.tagHandler.updateTag())

			r.Post("/recipes", handlers.recipeHandler.createRecipe())
			r.Patch("/recipes/{recipeID}", handlers.recipeHandler.updateRecipe())
			r.Delete("/recipes/{recipeID}", handlers.recipeHandler.deleteRecipe())

			r.Get("/recipes/download_shopping_cart", handlers.recipeHandler.downloadShoppingCart())

			r.Post("/recipes/{recipeID}/favorite", handlers.recipeHandler.addFavorite())
			r.Delete("/recipes/{recipeID}/favorite", handlers.recipeHandler.removeFavorite())
			r.Post("/recipes/{recipeID}/shopping_cart", handlers.recipeHandler.addToShoppingCart())
			r.Delete("/recipes/{recipeID}/shopping_cart", handlers.recipeHandler.removeFromShoppingCart())

			r.Get("/users/me", handlers.userHandler.getMe())
			r.Get("/users/subscriptions", handlers.userHandler.getSubscriptions())
			r.Post("/users/{userID}/subscribe", handlers.userHandler.subscribe())
			r.Delete("/users/{userID}/subscribe", handlers.userHandler.unsubscribe())
		})
	})
}
