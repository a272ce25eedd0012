package api

import (
	"encoding/json"
	"net/http"

	"github.com/plateful-app/plateful-backend/database"
	"github.com/plateful-app/plateful-backend/errs"
	"github.com/plateful-app/plateful-backend/models"
	"github.com/plateful-app/plateful-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type userHandler struct {
	responder        Responder
	logger           zerolog.Logger
	userRepo         *database.UserRepo
	subscriptionRepo *database.SubscriptionRepo
	recipeRepo       *database.RecipeRepo
	tokens           services.TokenIssuer
}

func newUserHandler(db database.Database, tokens services.TokenIssuer) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		userRepo:         db.UserRepo(),
		subscriptionRepo: db.SubscriptionRepo(),
		recipeRepo:       db.RecipeRepo(),
		tokens:           tokens,
	}
}

type registerRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register creates a new user account
func (h userHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode registration request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Email == "" {
			h.responder.WriteError(w, errs.NewValidationError("email", "email is required"))
			return
		}
		if req.Username == "" {
			h.responder.WriteError(w, errs.NewValidationError("username", "username is required"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewValidationError("password", "password is required"))
			return
		}

		hash, err := services.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
			return
		}

		user := models.User{
			Email:        req.Email,
			Username:     req.Username,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PasswordHash: hash,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		profile, err := buildUserProfile(h.subscriptionRepo, nil, user)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("build profile", "user", err))
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, profile)
	}
}

// login exchanges email and password for a bearer token
func (h userHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode login request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil || !services.CheckPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		token, err := h.tokens.Issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue token", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"auth_token": token})
	}
}

// getAllUsers retrieves a paginated user listing
func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetUser(r.Context())
		page, limit := parsePagination(r)

		users, total, err := h.userRepo.FindAll(page, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find users", "users", err))
			return
		}

		profiles := make([]UserProfile, 0, len(users))
		for _, user := range users {
			profile, err := buildUserProfile(h.subscriptionRepo, viewer, *user)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("check subscription", "subscription", err))
				return
			}
			profiles = append(profiles, profile)
		}

		h.responder.WriteJSON(w, Paginated{Count: total, Results: profiles})
	}
}

// getUser retrieves a specific user's profile by ID
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseIDParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		profile, err := buildUserProfile(h.subscriptionRepo, ctxGetUser(r.Context()), *user)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check subscription", "subscription", err))
			return
		}
		h.responder.WriteJSON(w, profile)
	}
}

// getMe retrieves the authenticated user's own profile
func (h userHandler) getMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		profile, err := buildUserProfile(h.subscriptionRepo, user, *user)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("build profile", "user", err))
			return
		}
		h.responder.WriteJSON(w, profile)
	}
}

// buildAuthorSummary assembles an author profile with embedded recipe
// summaries, truncated by recipesLimit when non-nil.
func (h userHandler) buildAuthorSummary(viewer *models.User, author models.User, recipesLimit *int) (AuthorSummary, error) {
	profile, err := buildUserProfile(h.subscriptionRepo, viewer, author)
	if err != nil {
		return AuthorSummary{}, wrapDatabaseError("check subscription", "subscription", err)
	}

	limit := 0
	if recipesLimit != nil {
		limit = *recipesLimit
	}
	recipes, err := h.recipeRepo.FindByAuthor(author.ID, limit)
	if err != nil {
		return AuthorSummary{}, wrapDatabaseError("find recipes", "recipes", err)
	}
	count, err := h.recipeRepo.CountByAuthor(author.ID)
	if err != nil {
		return AuthorSummary{}, wrapDatabaseError("count recipes", "recipes", err)
	}

	shorts := make([]RecipeShort, 0, len(recipes))
	for _, recipe := range recipes {
		shorts = append(shorts, buildRecipeShort(recipe))
	}

	return AuthorSummary{
		UserProfile:  profile,
		Recipes:      shorts,
		RecipesCount: count,
	}, nil
}

// parseRecipesLimit reads the optional recipes_limit query parameter.
func parseRecipesLimit(r *http.Request) *int {
	raw := r.URL.Query().Get("recipes_limit")
	if raw == "" {
		return nil
	}
	limit, err := parseQueryID(raw)
	if err != nil {
		return nil
	}
	value := int(limit)
	return &value
}

// subscribe adds the authenticated user as a subscriber of another author
func (h userHandler) subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		authorID, err := parseIDParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if authorID == user.ID {
			h.responder.WriteError(w, errs.NewValidationError("author", "cannot subscribe to yourself"))
			return
		}

		author, err := h.userRepo.FindByID(authorID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if author == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		exists, err := h.subscriptionRepo.Exists(user.ID, authorID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check subscription", "subscription", err))
			return
		}
		if exists {
			h.responder.WriteError(w, errs.NewAlreadyExists("subscription"))
			return
		}

		if err := h.subscriptionRepo.Add(user.ID, authorID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create subscription", "subscription", err))
			return
		}

		summary, err := h.buildAuthorSummary(user, *author, parseRecipesLimit(r))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, summary)
	}
}

// unsubscribe removes an existing subscription
func (h userHandler) unsubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		authorID, err := parseIDParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.subscriptionRepo.Delete(user.ID, authorID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete subscription", "subscription", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("subscription"))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// getSubscriptions retrieves the authors the authenticated user subscribes
// to, each with embedded recipe summaries
func (h userHandler) getSubscriptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())
		page, limit := parsePagination(r)
		recipesLimit := parseRecipesLimit(r)

		authors, total, err := h.userRepo.FindSubscribedAuthors(user.ID, page, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find subscriptions", "subscriptions", err))
			return
		}

		summaries := make([]AuthorSummary, 0, len(authors))
		for _, author := range authors {
			summary, err := h.buildAuthorSummary(user, *author, recipesLimit)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			summaries = append(summaries, summary)
		}

		h.responder.WriteJSON(w, Paginated{Count: total, Results: summaries})
	}
}
