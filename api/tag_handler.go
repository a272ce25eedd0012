package api

import (
	"encoding/json"
	"net/http"

	"github.com/plateful-app/plateful-backend/database"
	"github.com/plateful-app/plateful-backend/errs"
	"github.com/plateful-app/plateful-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

type tagWriteRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// getAllTags retrieves the full tag catalog
func (h tagHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tags", "tags", err))
			return
		}
		h.responder.WriteJSON(w, tags)
	}
}

// getTag retrieves a specific tag by ID
func (h tagHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := parseIDParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
			return
		}

		h.responder.WriteJSON(w, tag)
	}
}

// createTag creates a new tag; staff only
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())
		if !user.IsStaff {
			h.responder.WriteError(w, errs.NewForbiddenError("only staff may manage tags"))
			return
		}

		var req tagWriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode tag request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}
		if !models.PaletteContains(req.Color) {
			h.responder.WriteError(w, errs.NewValidationError("color", "color is not in the tag palette"))
			return
		}
		if req.Slug == "" {
			req.Slug = req.Name
		}

		slug := models.NormalizeSlug(req.Slug)
		taken, err := h.tagRepo.SlugTaken(slug, 0)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check tag slug", "tag", err))
			return
		}
		if taken {
			h.responder.WriteError(w, errs.NewValidationError("slug", "slug is already taken"))
			return
		}

		tag := models.Tag{Name: req.Name, Color: req.Color, Slug: slug}
		if err := h.tagRepo.Add(&tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create tag", "tag", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, tag)
	}
}

// updateTag edits an existing tag; staff only
func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())
		if !user.IsStaff {
			h.responder.WriteError(w, errs.NewForbiddenError("only staff may manage tags"))
			return
		}

		tagID, err := parseIDParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
			return
		}

		var req tagWriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode tag request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name != "" {
			tag.Name = req.Name
		}
		if req.Color != "" {
			if !models.PaletteContains(req.Color) {
				h.responder.WriteError(w, errs.NewValidationError("color", "color is not in the tag palette"))
				return
			}
			tag.Color = req.Color
		}
		if req.Slug != "" {
			slug := models.NormalizeSlug(req.Slug)
			taken, err := h.tagRepo.SlugTaken(slug, tag.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("check tag slug", "tag", err))
				return
			}
			if taken {
				h.responder.WriteError(w, errs.NewValidationError("slug", "slug is already taken"))
				return
			}
			tag.Slug = slug
		}

		if err := h.tagRepo.Update(tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update tag", "tag", err))
			return
		}

		h.responder.WriteJSON(w, tag)
	}
}
