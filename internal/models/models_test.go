package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func seedRecipe(t *testing.T, db *gorm.DB) (*User, *Recipe) {
	user := &User{Username: "cook", Email: "cook@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	recipe := &Recipe{Name: "Soup", Description: "Hot", AuthorID: user.ID, PrepTime: 5, CookTime: 20, Servings: 2}
	require.NoError(t, db.Create(recipe).Error)
	return user, recipe
}

func TestUserDefaultsToInactive(t *testing.T) {
	db := setupTestDB(t)
	user := &User{Username: "new", Email: "new@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	var stored User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.False(t, stored.IsActive)
	assert.False(t, stored.IsStaff)
}

func TestUserEmailIsUnique(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&User{Username: "a", Email: "same@example.com", PasswordHash: "x"}).Error)
	err := db.Create(&User{Username: "b", Email: "same@example.com", PasswordHash: "x"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRatingUniquePerRecipeAndAuthor(t *testing.T) {
	db := setupTestDB(t)
	user, recipe := seedRecipe(t, db)

	require.NoError(t, db.Create(&Rating{RecipeID: recipe.ID, AuthorID: user.ID, Score: 4}).Error)
	err := db.Create(&Rating{RecipeID: recipe.ID, AuthorID: user.ID, Score: 2}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRecipeIngredientUniquePerRecipe(t *testing.T) {
	db := setupTestDB(t)
	_, recipe := seedRecipe(t, db)
	salt := &Ingredient{Name: "Salt"}
	require.NoError(t, db.Create(salt).Error)

	require.NoError(t, db.Create(&RecipeIngredient{RecipeID: recipe.ID, IngredientID: salt.ID, Quantity: 1, Unit: UnitTeaspoons}).Error)
	err := db.Create(&RecipeIngredient{RecipeID: recipe.ID, IngredientID: salt.ID, Quantity: 2, Unit: UnitGrams}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUnitAndTimeUnitValidity(t *testing.T) {
	assert.True(t, UnitTablespoons.Valid())
	assert.Equal(t, "Tablespoons", UnitTablespoons.Label())
	assert.False(t, Unit("pinch").Valid())

	assert.True(t, TimeUnit("").Valid())
	assert.True(t, TimeUnitHours.Valid())
	assert.False(t, TimeUnit("days").Valid())
}

func TestScoreLabel(t *testing.T) {
	assert.Equal(t, "Very bad", ScoreLabel(1))
	assert.Equal(t, "Excellent", ScoreLabel(5))
	assert.Empty(t, ScoreLabel(0))
	assert.Empty(t, ScoreLabel(6))
}
