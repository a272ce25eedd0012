package api

import (
	"net/http"

	"github.com/plateful-app/plateful-backend/database"
	"github.com/plateful-app/plateful-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ingredientHandler struct {
	responder      Responder
	logger         zerolog.Logger
	ingredientRepo *database.IngredientRepo
}

func newIngredientHandler(ingredientRepo *database.IngredientRepo) ingredientHandler {
	logger := log.With().Str("handlerName", "ingredientHandler").Logger()

	return ingredientHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		ingredientRepo: ingredientRepo,
	}
}

// getAllIngredients retrieves ingredients, filtered by a case-insensitive
// name prefix when the name query parameter is set
func (h ingredientHandler) getAllIngredients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		namePrefix := r.URL.Query().Get("name")

		ingredients, err := h.ingredientRepo.FindAll(namePrefix)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find ingredients", "ingredients", err))
			return
		}

		h.responder.WriteJSON(w, ingredients)
	}
}

// getIngredient retrieves a specific ingredient by ID
func (h ingredientHandler) getIngredient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ingredientID, err := parseIDParam(r, "ingredientID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ingredient, err := h.ingredientRepo.FindByID(ingredientID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find ingredient", "ingredient", err))
			return
		}
		if ingredient == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("ingredient not found"))
			return
		}

		h.responder.WriteJSON(w, ingredient)
	}
}
