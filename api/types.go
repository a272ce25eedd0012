package api

import "github.com/plateful-app/plateful-backend/services"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	tokens            services.TokenIssuer
	tagHandler        tagHandler
	ingredientHandler ingredientHandler
	recipeHandler     recipeHandler
	userHandler       userHandler
}

// ErrorResponse is the JSON body of every error the API returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}
