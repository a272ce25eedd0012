package database

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/plateful-app/plateful-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDatabase opens an isolated in-memory database with the full schema.
func newTestDatabase(t *testing.T) Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see a different empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return New(db)
}

func createTestUser(t *testing.T, db Database, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	}
	require.NoError(t, db.UserRepo().Add(user))
	return user
}

func createTestTag(t *testing.T, db Database, name, color string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: color, Slug: models.NormalizeSlug(name)}
	require.NoError(t, db.TagRepo().Add(tag))
	return tag
}

func createTestIngredient(t *testing.T, db Database, name, unit string) models.Ingredient {
	t.Helper()
	ingredients := []models.Ingredient{{Name: name, MeasurementUnit: unit}}
	require.NoError(t, db.IngredientRepo().AddBatch(ingredients))
	return ingredients[0]
}

func createTestRecipe(t *testing.T, db Database, author *models.User, name string, tags []models.Tag, lines []models.IngredientLine) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Name:        name,
		Text:        "Cook it",
		CookingTime: 10,
		Image:       fmt.Sprintf("recipes/%s.png", name),
		AuthorID:    author.ID,
	}
	require.NoError(t, db.RecipeRepo().Create(recipe, tags, lines))
	return recipe
}

func TestDatabaseAccessors(t *testing.T) {
	db := newTestDatabase(t)

	require.NotNil(t, db.UserRepo())
	require.NotNil(t, db.TagRepo())
	require.NotNil(t, db.IngredientRepo())
	require.NotNil(t, db.RecipeRepo())
	require.NotNil(t, db.FavoriteRepo())
	require.NotNil(t, db.CartRepo())
	require.NotNil(t, db.SubscriptionRepo())
}
