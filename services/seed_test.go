package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadIngredients(t *testing.T) {
	db := newTestDatabase(t)
	path := writeTempCSV(t, "Salt,g\nPepper,g\nMilk,ml\n")

	count, err := LoadIngredients(path, db.IngredientRepo())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	found, err := db.IngredientRepo().FindAll("")
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestLoadIngredientsAppendOnly(t *testing.T) {
	db := newTestDatabase(t)
	path := writeTempCSV(t, "Salt,g\n")

	_, err := LoadIngredients(path, db.IngredientRepo())
	require.NoError(t, err)
	_, err = LoadIngredients(path, db.IngredientRepo())
	require.NoError(t, err)

	found, err := db.IngredientRepo().FindAll("")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestLoadIngredientsRejectsShortRows(t *testing.T) {
	db := newTestDatabase(t)
	path := writeTempCSV(t, "Salt\n")

	_, err := LoadIngredients(path, db.IngredientRepo())
	assert.Error(t, err)
}

func TestLoadTags(t *testing.T) {
	db := newTestDatabase(t)
	path := writeTempCSV(t, "Breakfast,#FF0000,Breakfast Time\nDinner,#00FF00,dinner\n")

	count, err := LoadTags(path, db.TagRepo())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	tags, err := db.TagRepo().FindAll()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	// Slugs are normalized on load
	assert.Equal(t, "breakfast-time", tags[0].Slug)
}

func TestLoadTagsDuplicateSlugFails(t *testing.T) {
	db := newTestDatabase(t)
	path := writeTempCSV(t, "Breakfast,#FF0000,breakfast\nBrunch,#00FF00,breakfast\n")

	count, err := LoadTags(path, db.TagRepo())
	assert.Error(t, err)
	assert.Equal(t, 1, count)
}

func TestLoadIngredientsMissingFile(t *testing.T) {
	db := newTestDatabase(t)

	_, err := LoadIngredients("/nonexistent/catalog.csv", db.IngredientRepo())
	assert.Error(t, err)
}
