package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/plateful-app/plateful-backend/config"
	"github.com/plateful-app/plateful-backend/database"
	"github.com/plateful-app/plateful-backend/models"
	"github.com/plateful-app/plateful-backend/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestEnv builds a router over an isolated in-memory database.
func newTestEnv(t *testing.T) (*chi.Mux, database.Database) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	currentDB := database.New(db)
	router := newRouter(currentDB, withConfig(map[string]string{
		config.KeyJWTSecret:     "test-secret",
		config.KeyTokenTTLHours: "1",
		config.KeyMediaRoot:     t.TempDir(),
	}))
	return router, currentDB
}

// doRequest runs one request through the router. A non-nil body is sent as
// JSON; a non-empty token goes into the Authorization header.
func doRequest(t *testing.T, router *chi.Mux, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeJSON(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
}

// registerAndLogin creates an account through the API and returns its token.
func registerAndLogin(t *testing.T, router *chi.Mux, username string) string {
	t.Helper()

	resp := doRequest(t, router, http.MethodPost, "/api/users", map[string]string{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "hunter2",
	}, "")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = doRequest(t, router, http.MethodPost, "/api/auth/token/login", map[string]string{
		"email":    username + "@example.com",
		"password": "hunter2",
	}, "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body map[string]string
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body["auth_token"])
	return body["auth_token"]
}

// createStaffAndLogin inserts a staff account directly and returns its token.
func createStaffAndLogin(t *testing.T, router *chi.Mux, db database.Database) string {
	t.Helper()

	hash, err := services.HashPassword("hunter2")
	require.NoError(t, err)
	staff := &models.User{
		Email:        "staff@example.com",
		Username:     "staff",
		PasswordHash: hash,
		IsStaff:      true,
	}
	require.NoError(t, db.UserRepo().Add(staff))

	resp := doRequest(t, router, http.MethodPost, "/api/auth/token/login", map[string]string{
		"email":    "staff@example.com",
		"password": "hunter2",
	}, "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body map[string]string
	decodeJSON(t, resp, &body)
	return body["auth_token"]
}

// seedCatalog inserts a tag and two ingredients directly, returning their ids.
func seedCatalog(t *testing.T, db database.Database) (tagID uint, ingredientIDs []uint) {
	t.Helper()

	tag := &models.Tag{Name: "Breakfast", Color: "#FF0000", Slug: "breakfast"}
	require.NoError(t, db.TagRepo().Add(tag))

	ingredients := []models.Ingredient{
		{Name: "Flour", MeasurementUnit: "g"},
		{Name: "Milk", MeasurementUnit: "ml"},
	}
	require.NoError(t, db.IngredientRepo().AddBatch(ingredients))
	return tag.ID, []uint{ingredients[0].ID, ingredients[1].ID}
}

func testImageURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake png bytes"))
}

// recipePayload builds a valid write request that tests can mutate.
func recipePayload(tagID uint, ingredientIDs []uint) map[string]any {
	lines := make([]map[string]any, 0, len(ingredientIDs))
	for i, id := range ingredientIDs {
		lines = append(lines, map[string]any{"id": id, "amount": (i + 1) * 100})
	}
	return map[string]any{
		"name":         "Pancakes",
		"text":         "Mix and fry",
		"cooking_time": 15,
		"image":        testImageURI(),
		"tags":         []uint{tagID},
		"ingredients":  lines,
	}
}
