package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/plateful-app/plateful-backend/database"
	"github.com/plateful-app/plateful-backend/errs"
	"github.com/plateful-app/plateful-backend/models"
	"github.com/plateful-app/plateful-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type recipeHandler struct {
	responder        Responder
	logger           zerolog.Logger
	recipeRepo       *database.RecipeRepo
	tagRepo          *database.TagRepo
	ingredientRepo   *database.IngredientRepo
	favoriteRepo     *database.FavoriteRepo
	cartRepo         *database.CartRepo
	subscriptionRepo *database.SubscriptionRepo
	mediaRoot        string
	fontPath         string
}

func newRecipeHandler(db database.Database, mediaRoot, fontPath string) recipeHandler {
	logger := log.With().Str("handlerName", "recipeHandler").Logger()

	return recipeHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		recipeRepo:       db.RecipeRepo(),
		tagRepo:          db.TagRepo(),
		ingredientRepo:   db.IngredientRepo(),
		favoriteRepo:     db.FavoriteRepo(),
		cartRepo:         db.CartRepo(),
		subscriptionRepo: db.SubscriptionRepo(),
		mediaRoot:        mediaRoot,
		fontPath:         fontPath,
	}
}

// recipeWriteRequest is the write shape of a recipe. The read shape
// (RecipeDetail) is distinct and always built explicitly; which one applies
// is decided by the request method, not by type dispatch.
type recipeWriteRequest struct {
	Ingredients []ingredientLineRequest `json:"ingredients"`
	Tags        []uint                  `json:"tags"`
	Image       string                  `json:"image"`
	Name        string                  `json:"name"`
	Text        string                  `json:"text"`
	CookingTime int                     `json:"cooking_time"`
}

type ingredientLineRequest struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// validate applies the payload-local rules: required fields, bounds, and
// duplicate-free id lists. Referential checks happen separately.
func (req recipeWriteRequest) validate() error {
	if req.Name == "" {
		return errs.NewValidationError("name", "name is required")
	}
	if req.Text == "" {
		return errs.NewValidationError("text", "text is required")
	}
	if utf8.RuneCountInString(req.Text) > models.MaxRecipeTextLength {
		return errs.NewValidationError("text", fmt.Sprintf("text exceeds %d characters", models.MaxRecipeTextLength))
	}
	if req.CookingTime < 1 {
		return errs.NewValidationError("cooking_time", "cooking time must be at least 1 minute")
	}

	if len(req.Tags) == 0 {
		return errs.NewValidationError("tags", "at least one tag is required")
	}
	seenTags := make(map[uint]struct{}, len(req.Tags))
	for _, tagID := range req.Tags {
		if _, dup := seenTags[tagID]; dup {
			return errs.NewValidationError("tags", "tag is repeated")
		}
		seenTags[tagID] = struct{}{}
	}

	if len(req.Ingredients) == 0 {
		return errs.NewValidationError("ingredients", "at least one ingredient is required")
	}
	seenIngredients := make(map[uint]struct{}, len(req.Ingredients))
	for _, line := range req.Ingredients {
		if _, dup := seenIngredients[line.ID]; dup {
			return errs.NewValidationError("ingredients", "ingredient is repeated")
		}
		seenIngredients[line.ID] = struct{}{}
		if line.Amount < 1 {
			return errs.NewValidationError("ingredients", "amount must be at least 1")
		}
	}
	return nil
}

// resolveRelations loads the referenced tags and ingredients. A missing tag
// id is a validation problem; a missing ingredient is NotFound.
func (h recipeHandler) resolveRelations(req recipeWriteRequest) ([]models.Tag, []models.IngredientLine, error) {
	tags, err := h.tagRepo.FindByIDs(req.Tags)
	if err != nil {
		return nil, nil, wrapDatabaseError("find tags", "tags", err)
	}
	if len(tags) != len(req.Tags) {
		return nil, nil, errs.NewValidationError("tags", "unknown tag id")
	}

	ingredientIDs := make([]uint, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		ingredientIDs = append(ingredientIDs, line.ID)
	}
	ingredients, err := h.ingredientRepo.FindByIDs(ingredientIDs)
	if err != nil {
		return nil, nil, wrapDatabaseError("find ingredients", "ingredients", err)
	}
	if len(ingredients) != len(req.Ingredients) {
		return nil, nil, errs.NewNotFoundError("ingredient not found")
	}

	lines := make([]models.IngredientLine, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		lines = append(lines, models.IngredientLine{
			IngredientID: line.ID,
			Amount:       line.Amount,
		})
	}
	return tags, lines, nil
}

// buildRecipeDetail assembles the read shape of a recipe relative to the
// viewer (nil for anonymous requests).
func (h recipeHandler) buildRecipeDetail(recipe *models.Recipe, viewer *models.User) (RecipeDetail, error) {
	author, err := buildUserProfile(h.subscriptionRepo, viewer, recipe.Author)
	if err != nil {
		return RecipeDetail{}, wrapDatabaseError("check subscription", "subscription", err)
	}

	ingredients := make([]IngredientAmount, 0, len(recipe.IngredientLines))
	for _, line := range recipe.IngredientLines {
		ingredients = append(ingredients, IngredientAmount{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}

	detail := RecipeDetail{
		ID:          recipe.ID,
		Tags:        recipe.Tags,
		Author:      author,
		Ingredients: ingredients,
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
	}
	if detail.Tags == nil {
		detail.Tags = []models.Tag{}
	}

	if viewer != nil {
		favorited, err := h.favoriteRepo.Exists(viewer.ID, recipe.ID)
		if err != nil {
			return RecipeDetail{}, wrapDatabaseError("check favorite", "favorite", err)
		}
		inCart, err := h.cartRepo.Exists(viewer.ID, recipe.ID)
		if err != nil {
			return RecipeDetail{}, wrapDatabaseError("check shopping cart", "shopping_cart", err)
		}
		detail.IsFavorited = favorited
		detail.IsInShoppingCart = inCart
	}
	return detail, nil
}

// getAllRecipes retrieves a filtered, paginated recipe listing
func (h recipeHandler) getAllRecipes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetUser(r.Context())
		page, limit := parsePagination(r)

		filter := database.RecipeFilter{
			TagSlugs: r.URL.Query()["tags"],
			Page:     page,
			Limit:    limit,
		}
		if raw := r.URL.Query().Get("author"); raw != "" {
			authorID, err := parseQueryID(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewValidationError("author", "author must be a numeric id"))
				return
			}
			filter.AuthorID = &authorID
		}
		// The favorited/in-cart filters only take effect for an
		// authenticated viewer
		if viewer != nil {
			if parseBoolParam(r, "is_favorited") {
				filter.FavoritedBy = &viewer.ID
			}
			if parseBoolParam(r, "is_in_shopping_cart") {
				filter.InCartOf = &viewer.ID
			}
		}

		recipes, total, err := h.recipeRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find recipes", "recipes", err))
			return
		}

		details := make([]RecipeDetail, 0, len(recipes))
		for _, recipe := range recipes {
			detail, err := h.buildRecipeDetail(recipe, viewer)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			details = append(details, detail)
		}

		h.responder.WriteJSON(w, Paginated{Count: total, Results: details})
	}
}

// getRecipe retrieves a specific recipe by ID
func (h recipeHandler) getRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, err := parseIDParam(r, "recipeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipe, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find recipe", "recipe", err))
			return
		}
		if recipe == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("recipe not found"))
			return
		}

		detail, err := h.buildRecipeDetail(recipe, ctxGetUser(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, detail)
	}
}

// createRecipe creates a new recipe owned by the authenticated user
func (h recipeHandler) createRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		var req recipeWriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode recipe request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := req.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.Image == "" {
			h.responder.WriteError(w, errs.NewValidationError("image", "image is required"))
			return
		}

		tags, lines, err := h.resolveRelations(req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		imagePath, err := services.SaveRecipeImage(h.mediaRoot, req.Image)
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("image", err.Error()))
			return
		}

		recipe := models.Recipe{
			Name:        req.Name,
			Text:        req.Text,
			CookingTime: req.CookingTime,
			Image:       imagePath,
			AuthorID:    user.ID,
		}
		if err := h.recipeRepo.Create(&recipe, tags, lines); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create recipe", "recipe", err))
			return
		}

		// Reload to pick up preloaded associations for the read shape
		created, err := h.recipeRepo.FindByID(recipe.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created recipe", "recipe", err))
			return
		}

		detail, err := h.buildRecipeDetail(created, user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, detail)
	}
}

// updateRecipe replaces the mutable fields, the tag set and all ingredient
// lines of an existing recipe; author or staff only
func (h recipeHandler) updateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		recipeID, err := parseIDParam(r, "recipeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find recipe", "recipe", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("recipe not found"))
			return
		}
		if existing.AuthorID != user.ID && !user.IsStaff {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author may edit this recipe"))
			return
		}

		var req recipeWriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode recipe request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := req.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tags, lines, err := h.resolveRelations(req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Author is immutable; only content fields change
		existing.Name = req.Name
		existing.Text = req.Text
		existing.CookingTime = req.CookingTime
		if req.Image != "" {
			imagePath, err := services.SaveRecipeImage(h.mediaRoot, req.Image)
			if err != nil {
				h.responder.WriteError(w, errs.NewValidationError("image", err.Error()))
				return
			}
			existing.Image = imagePath
		}

		update := models.Recipe{
			ID:          existing.ID,
			Name:        existing.Name,
			Text:        existing.Text,
			CookingTime: existing.CookingTime,
			Image:       existing.Image,
			AuthorID:    existing.AuthorID,
			CreatedAt:   existing.CreatedAt,
		}
		if err := h.recipeRepo.Update(&update, tags, lines); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update recipe", "recipe", err))
			return
		}

		updated, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated recipe", "recipe", err))
			return
		}

		detail, err := h.buildRecipeDetail(updated, user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, detail)
	}
}

// deleteRecipe deletes a recipe and its dependent rows; author or staff only
func (h recipeHandler) deleteRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		recipeID, err := parseIDParam(r, "recipeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find recipe", "recipe", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("recipe not found"))
			return
		}
		if existing.AuthorID != user.ID && !user.IsStaff {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author may delete this recipe"))
			return
		}

		if err := h.recipeRepo.Delete(recipeID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete recipe", "recipe", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// recipeRelation is the shared shape of the favorite and shopping-cart
// membership stores.
type recipeRelation interface {
	Exists(userID, recipeID uint) (bool, error)
	Add(userID, recipeID uint) error
	Delete(userID, recipeID uint) (bool, error)
}

// addRecipeRelation inserts a (user, recipe) pair and returns the short
// recipe shape. Missing recipe is NotFound; a duplicate pair is Conflict.
func (h recipeHandler) addRecipeRelation(w http.ResponseWriter, r *http.Request, relation recipeRelation, entity string) {
	user := ctxGetUser(r.Context())

	recipeID, err := parseIDParam(r, "recipeID")
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	recipe, err := h.recipeRepo.FindByID(recipeID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find recipe", "recipe", err))
		return
	}
	if recipe == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("recipe not found"))
		return
	}

	exists, err := relation.Exists(user.ID, recipeID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("check "+entity, entity, err))
		return
	}
	if exists {
		h.responder.WriteError(w, errs.NewAlreadyExists(entity))
		return
	}

	if err := relation.Add(user.ID, recipeID); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("create "+entity, entity, err))
		return
	}

	h.responder.WriteJSONStatus(w, http.StatusCreated, buildRecipeShort(*recipe))
}

// removeRecipeRelation deletes a (user, recipe) pair; a missing pair is
// NotFound.
func (h recipeHandler) removeRecipeRelation(w http.ResponseWriter, r *http.Request, relation recipeRelation, entity string) {
	user := ctxGetUser(r.Context())

	recipeID, err := parseIDParam(r, "recipeID")
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	deleted, err := relation.Delete(user.ID, recipeID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("delete "+entity, entity, err))
		return
	}
	if !deleted {
		h.responder.WriteError(w, errs.NewNotFound(entity))
		return
	}

	h.responder.WriteNoContent(w)
}

func (h recipeHandler) addFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.addRecipeRelation(w, r, h.favoriteRepo, "favorite")
	}
}

func (h recipeHandler) removeFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.removeRecipeRelation(w, r, h.favoriteRepo, "favorite")
	}
}

func (h recipeHandler) addToShoppingCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.addRecipeRelation(w, r, h.cartRepo, "shopping cart entry")
	}
}

func (h recipeHandler) removeFromShoppingCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.removeRecipeRelation(w, r, h.cartRepo, "shopping cart entry")
	}
}

// downloadShoppingCart consolidates the user's cart and streams it as a PDF
// attachment. An empty cart yields a JSON error body, not a document.
func (h recipeHandler) downloadShoppingCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		lines, err := services.ShoppingList(h.cartRepo, user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		document, err := services.RenderShoppingListPDF(user.FullName(), time.Now(), lines, h.fontPath)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to render shopping list document")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to render shopping list", err))
			return
		}

		filename := services.ShoppingListFilename(user.Username)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		if _, err := w.Write(document); err != nil {
			h.logger.Error().Err(err).Msg("Failed to write shopping list document")
		}
	}
}
