package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/plateful-app/plateful-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTagsPublic(t *testing.T) {
	router, db := newTestEnv(t)
	seedCatalog(t, db)

	resp := doRequest(t, router, http.MethodGet, "/api/tags", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var tags []models.Tag
	decodeJSON(t, resp, &tags)
	require.Len(t, tags, 1)
	assert.Equal(t, "Breakfast", tags[0].Name)
}

func TestGetTagMissing(t *testing.T) {
	router, _ := newTestEnv(t)

	resp := doRequest(t, router, http.MethodGet, "/api/tags/999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateTagStaffOnly(t *testing.T) {
	router, _ := newTestEnv(t)
	userToken := registerAndLogin(t, router, "alice")

	payload := map[string]string{"name": "Dinner", "color": "#00FF00"}

	resp := doRequest(t, router, http.MethodPost, "/api/tags", payload, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doRequest(t, router, http.MethodPost, "/api/tags", payload, userToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestCreateTag(t *testing.T) {
	router, db := newTestEnv(t)
	staffToken := createStaffAndLogin(t, router, db)

	resp := doRequest(t, router, http.MethodPost, "/api/tags", map[string]string{
		"name":  "Quick Meals",
		"color": "#00FF00",
	}, staffToken)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var tag models.Tag
	decodeJSON(t, resp, &tag)
	assert.Equal(t, "Quick Meals", tag.Name)
	// Slug defaults to the normalized name
	assert.Equal(t, "quick-meals", tag.Slug)
}

func TestCreateTagRejectsBadColor(t *testing.T) {
	router, db := newTestEnv(t)
	staffToken := createStaffAndLogin(t, router, db)

	resp := doRequest(t, router, http.MethodPost, "/api/tags", map[string]string{
		"name":  "Dinner",
		"color": "#123456",
	}, staffToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateTagSlugCollision(t *testing.T) {
	router, db := newTestEnv(t)
	staffToken := createStaffAndLogin(t, router, db)
	seedCatalog(t, db)

	resp := doRequest(t, router, http.MethodPost, "/api/tags", map[string]string{
		"name":  "Second Breakfast",
		"color": "#00FF00",
		"slug":  "Breakfast",
	}, staffToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestUpdateTag(t *testing.T) {
	router, db := newTestEnv(t)
	staffToken := createStaffAndLogin(t, router, db)
	tagID, _ := seedCatalog(t, db)
	tagURL := fmt.Sprintf("/api/tags/%d", tagID)

	resp := doRequest(t, router, http.MethodPatch, tagURL, map[string]string{
		"name": "Brunch",
		"slug": "brunch",
	}, staffToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var tag models.Tag
	decodeJSON(t, resp, &tag)
	assert.Equal(t, "Brunch", tag.Name)
	assert.Equal(t, "brunch", tag.Slug)
	// Color untouched by a partial edit
	assert.Equal(t, "#FF0000", tag.Color)
}

func TestIngredientsEndpoint(t *testing.T) {
	router, db := newTestEnv(t)
	seedCatalog(t, db)

	resp := doRequest(t, router, http.MethodGet, "/api/ingredients?name=fl", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var ingredients []models.Ingredient
	decodeJSON(t, resp, &ingredients)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Flour", ingredients[0].Name)

	resp = doRequest(t, router, http.MethodGet, "/api/ingredients/999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
