package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipe(t *testing.T) {
	router, db := newTestEnv(t)
	token := registerAndLogin(t, router, "alice")
	tagID, ingredientIDs := seedCatalog(t, db)

	resp := doRequest(t, router, http.MethodPost, "/api/recipes", recipePayload(tagID, ingredientIDs), token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var detail RecipeDetail
	decodeJSON(t, resp, &detail)
	assert.Equal(t, "Pancakes", detail.Name)
	assert.Equal(t, "alice", detail.Author.Username)
	assert.NotEmpty(t, detail.Image)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, "breakfast", detail.Tags[0].Slug)
	require.Len(t, detail.Ingredients, 2)
	assert.Equal(t, "Flour", detail.Ingredients[0].Name)
	assert.Equal(t, 100, detail.Ingredients[0].Amount)
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	router, db := newTestEnv(t)
	tagID, ingredientIDs := seedCatalog(t, db)

	resp := doRequest(t, router, http.MethodPost, "/api/recipes", recipePayload(tagID, ingredientIDs), "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreateRecipeValidation(t *testing.T) {
	router, db := newTestEnv(t)
	token := registerAndLogin(t, router, "alice")
	tagID, ingredientIDs := seedCatalog(t, db)

	mutate := func(change func(map[string]any)) map[string]any {
		payload := recipePayload(tagID, ingredientIDs)
		change(payload)
		return payload
	}

	cases := []struct {
		name     string
		payload  map[string]any
		expected int
	}{
		{"missing name", mutate(func(p map[string]any) { p["name"] = "" }), http.StatusBadRequest},
		{"missing image", mutate(func(p map[string]any) { p["image"] = "" }), http.StatusBadRequest},
		{"zero cooking time", mutate(func(p map[string]any) { p["cooking_time"] = 0 }), http.StatusBadRequest},
		{"no tags", mutate(func(p map[string]any) { p["tags"] = []uint{} }), http.StatusBadRequest},
		{"duplicate tags", mutate(func(p map[string]any) { p["tags"] = []uint{tagID, tagID} }), http.StatusBadRequest},
		{"unknown tag", mutate(func(p map[string]any) { p["tags"] = []uint{999} }), http.StatusBadRequest},
		{"no ingredients", mutate(func(p map[string]any) { p["ingredients"] = []map[string]any{} }), http.StatusBadRequest},
		{"zero amount", mutate(func(p map[string]any) {
			p["ingredients"] = []map[string]any{{"id": ingredientIDs[0], "amount": 0}}
		}), http.StatusBadRequest},
		{"unknown ingredient", mutate(func(p map[string]any) {
			p["ingredients"] = []map[string]any{{"id": 999, "amount": 1}}
		}), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, router, http.MethodPost, "/api/recipes", tc.payload, token)
			assert.Equal(t, tc.expected, resp.Code, resp.Body.String())
		})
	}
}

func TestRecipeTextLimitCountsRunes(t *testing.T) {
	router, db := newTestEnv(t)
	token := registerAndLogin(t, router, "alice")
	tagID, ingredientIDs := seedCatalog(t, db)

	// 3000 Cyrillic characters exceed 3000 bytes but stay within the limit
	payload := recipePayload(tagID, ingredientIDs)
	payload["text"] = strings.Repeat("щ", 3000)
	resp := doRequest(t, router, http.MethodPost, "/api/recipes", payload, token)
	assert.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	payload = recipePayload(tagID, ingredientIDs)
	payload["text"] = strings.Repeat("щ", 3001)
	resp = doRequest(t, router, http.MethodPost, "/api/recipes", payload, token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdateRecipeAuthorOnly(t *testing.T) {
	router, db := newTestEnv(t)
	aliceToken := registerAndLogin(t, router, "alice")
	bobToken := registerAndLogin(t, router, "bob")
	tagID, ingredientIDs := seedCatalog(t, db)

	resp := doRequest(t, router, http.MethodPost, "/api/recipes", recipePayload(tagID, ingredientIDs), aliceToken)
	require.Equal(t, http.StatusCreated, resp.Code)
	var created RecipeDetail
	decodeJSON(t, resp, &created)
	recipeURL := fmt.Sprintf("/api/recipes/%d", created.ID)

	update := recipePayload(tagID, ingredientIDs[:1])
	update["name"] = "Crepes"
	delete(update, "image")

	// Another user may not edit
	resp = doRequest(t, router, http.MethodPatch, recipeURL, update, bobToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// The author may; lines are replaced wholesale and the image is kept
	resp = doRequest(t, router, http.MethodPatch, recipeURL, update, aliceToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated RecipeDetail
	decodeJSON(t, resp, &updated)
	assert.Equal(t, "Crepes", updated.Name)
	assert.Equal(t, created.Image, updated.Image)
	assert.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "alice", updated.Author.Username)
}

func TestStaffMayEditAnyRecipe(t *testing.T) {
	router, db := newTestEnv(t)
	aliceToken := registerAndLogin(t, router, "alice")
	staffToken := createStaffAndLogin(t, router, db)
	tagID, ingredientIDs := seedCatalog(t, db)

	resp := doRequest(t, router, http.MethodPost, "/api/recipes", recipePayload(tagID, ingredientIDs), aliceToken)
	require.Equal(t, http.StatusCreated, resp.Code)
	var created RecipeDetail
	decodeJSON(t, resp, &created)

	resp = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/recipes/%d", created.ID), nil, staffToken)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestDeleteRecipe(t *testing.T) {
	router, db := newTestEnv(t)
	aliceToken := registerAndLogin(t, router, "alice")
	bobToken := registerAndLogin(t, router, "bob")
	tagID, ingredientIDs := seedCatalog(t, db)

	resp := doRequest(t, router, http.MethodPost, "/api/recipes", recipePayload(tagID, ingredientIDs), aliceToken)
	require.Equal(t, http.StatusCreated, resp.Code)
	var created RecipeDetail
	decodeJSON(t, resp, &created)
	recipeURL := fmt.Sprintf("/api/recipes/%d", created.ID)

	resp = doRequest(t, router, http.MethodDelete, recipeURL, nil, bobToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = doRequest(t, router, http.MethodDelete, recipeURL, nil, aliceToken)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = doRequest(t, router, http.MethodGet, recipeURL, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestFavoriteToggle(t *testing.T) {
	router, db := newTestEnv(t)
	token := registerAndLogin(t, router, "alice")
	tagID, ingredientIDs := seedCatalog(t, db)

	resp := doRequest(t, router, http.MethodPost, "/api/recipes", recipePayload(tagID, ingredientIDs), token)
	require.Equal(t, http.StatusCreated, resp.Code)
	var created RecipeDetail
	decodeJSON(t, resp, &created)
	favoriteURL := fmt.Sprintf("/api/recipes/%d/favorite", created.ID)

	resp = doRequest(t, router, http.MethodPost, favoriteURL, nil, token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var short RecipeShort
	decodeJSON(t, resp, &short)
	assert.Equal(t, created.ID, short.ID)
	assert.Equal(t, "Pancakes", short.Name)

	// Double add conflicts
	resp = doRequest(t, router, http.MethodPost, favoriteURL, nil, token)
	assert.Equal(t, http.StatusConflict, resp.Code)

	// The flag shows up on the detail read
	resp = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/recipes/%d", created.ID), nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	var detail RecipeDetail
	decodeJSON(t, resp, &detail)
	assert.True(t, detail.IsFavorited)

	resp = doRequest(t, router, http.MethodDelete, favoriteURL, nil, token)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = doRequest(t, router, http.MethodDelete, favoriteURL, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestFavoriteMissingRecipe(t *testing.T) {
	router, _ := newTestEnv(t)
	token := registerAndLogin(t, router, "alice")

	resp := doRequest(t, router, http.MethodPost, "/api/recipes/999/favorite", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRecipeListFilters(t *testing.T) {
	router, db := newTestEnv(t)
	token := registerAndLogin(t, router, "alice")
	tagID, ingredientIDs := seedCatalog(t, db)

	resp := doRequest(t, router, http.MethodPost, "/api/recipes", recipePayload(tagID, ingredientIDs), token)
	require.Equal(t, http.StatusCreated, resp.Code)
	var created RecipeDetail
	decodeJSON(t, resp, &created)

	var page struct {
		Count   int64          `json:"count"`
		Results []RecipeDetail `json:"results"`
	}

	resp = doRequest(t, router, http.MethodGet, "/api/recipes?tags=breakfast", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	decodeJSON(t, resp, &page)
	assert.EqualValues(t, 1, page.Count)

	resp = doRequest(t, router, http.MethodGet, "/api/recipes?tags=dinner", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	decodeJSON(t, resp, &page)
	assert.EqualValues(t, 0, page.Count)

	// is_favorited is a no-op for anonymous viewers
	resp = doRequest(t, router, http.MethodGet, "/api/recipes?is_favorited=1", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	decodeJSON(t, resp, &page)
	assert.EqualValues(t, 1, page.Count)

	// ...but filters for an authenticated one
	resp = doRequest(t, router, http.MethodGet, "/api/recipes?is_favorited=1", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeJSON(t, resp, &page)
	assert.EqualValues(t, 0, page.Count)

	resp = doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/recipes/%d/favorite", created.ID), nil, token)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(t, router, http.MethodGet, "/api/recipes?is_favorited=1", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeJSON(t, resp, &page)
	assert.EqualValues(t, 1, page.Count)
}

func TestDownloadShoppingCart(t *testing.T) {
	router, db := newTestEnv(t)
	token := registerAndLogin(t, router, "alice")
	tagID, ingredientIDs := seedCatalog(t, db)

	// Empty cart is an error, not an empty document
	resp := doRequest(t, router, http.MethodGet, "/api/recipes/download_shopping_cart", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "application/json")

	created := doRequest(t, router, http.MethodPost, "/api/recipes", recipePayload(tagID, ingredientIDs), token)
	require.Equal(t, http.StatusCreated, created.Code)
	var detail RecipeDetail
	decodeJSON(t, created, &detail)

	resp = doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/recipes/%d/shopping_cart", detail.ID), nil, token)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(t, router, http.MethodGet, "/api/recipes/download_shopping_cart", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=alice_shopping_list.pdf", resp.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF", resp.Body.String()[:4])
}

func TestShoppingCartToggle(t *testing.T) {
	router, db := newTestEnv(t)
	token := registerAndLogin(t, router, "alice")
	tagID, ingredientIDs := seedCatalog(t, db)

	resp := doRequest(t, router, http.MethodPost, "/api/recipes", recipePayload(tagID, ingredientIDs), token)
	require.Equal(t, http.StatusCreated, resp.Code)
	var created RecipeDetail
	decodeJSON(t, resp, &created)
	cartURL := fmt.Sprintf("/api/recipes/%d/shopping_cart", created.ID)

	resp = doRequest(t, router, http.MethodPost, cartURL, nil, token)
	assert.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(t, router, http.MethodPost, cartURL, nil, token)
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = doRequest(t, router, http.MethodDelete, cartURL, nil, token)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = doRequest(t, router, http.MethodDelete, cartURL, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
