package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/mocks"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/testdb"
	"github.com/pageza/recipeshare/backend/internal/types"
)

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
	_ ICategoryService   = (*CategoryService)(nil)
	_ IIngredientService = (*IngredientService)(nil)
	_ ICommentService    = (*CommentService)(nil)
	_ IRatingService     = (*RatingService)(nil)
	_ IProfileService    = (*ProfileService)(nil)
	_ IEmailService      = (*EmailService)(nil)
	_ IEmailService      = (*mocks.MockEmailService)(nil)
	_ ObjectStore        = (*mocks.MockObjectStore)(nil)
	_ ObjectStore        = (*config.S3Config)(nil)
)

const strongPassword = "Str0ng!Pass"

func testConfig() *config.Config {
	return &config.Config{
		Environment:        config.Test,
		JWTSecret:          "test-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    24 * time.Hour,
		ActivationTokenTTL: time.Hour,
		AppURL:             "http://localhost:8000/",
	}
}

// createUser inserts an active user with a profile, bypassing registration.
func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(strongPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Omit("User").Create(&models.Profile{UserID: user.ID}).Error)
	return user
}

func uintPtr(v uint) *uint { return &v }

func recipeRequest(names ...string) *types.RecipeRequest {
	req := &types.RecipeRequest{
		Name:         "Pancakes",
		Description:  "Fluffy breakfast pancakes",
		PrepTime:     uintPtr(10),
		PrepTimeUnit: models.TimeUnitMinutes,
		CookTime:     uintPtr(15),
		Servings:     uintPtr(4),
	}
	for _, n := range names {
		req.Ingredients = append(req.Ingredients, types.RecipeIngredientInput{
			IngredientName: n,
			Quantity:       100,
			Unit:           models.UnitGrams,
		})
	}
	return req
}

func createRecipe(t *testing.T, db *gorm.DB, author *models.User) *models.Recipe {
	t.Helper()
	recipe, err := NewRecipeService(db, nil).Create(context.Background(), author.ID, recipeRequest("Flour", "Milk"))
	require.NoError(t, err)
	return recipe
}

func newDB(t *testing.T) *gorm.DB {
	return testdb.SQLite(t)
}
