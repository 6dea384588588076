package service

import (
	"context"
	"io"
	"time"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// IAuthService defines the interface for registration, activation and tokens
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	IssueTokenPair(user *models.User) (*types.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	Activate(ctx context.Context, uid, token string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	List(ctx context.Context, filter types.RecipeFilter) ([]models.Recipe, error)
	Get(ctx context.Context, id uint) (*models.Recipe, error)
	Create(ctx context.Context, authorID uint, req *types.RecipeRequest) (*models.Recipe, error)
	Update(ctx context.Context, actorID, id uint, req *types.RecipeRequest) (*models.Recipe, error)
	Patch(ctx context.Context, actorID, id uint, req *types.RecipePatchRequest) (*models.Recipe, error)
	Delete(ctx context.Context, actorID, id uint) error
	Ingredients(ctx context.Context, recipeID uint) ([]models.RecipeIngredient, error)
	SetImage(ctx context.Context, actorID, id uint, img ImageUpload) (*models.Recipe, error)
}

type ICategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	Update(ctx context.Context, id uint, name string) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
}

type IIngredientService interface {
	List(ctx context.Context, search string) ([]models.Ingredient, error)
	Get(ctx context.Context, id uint) (*models.Ingredient, error)
	Create(ctx context.Context, req *types.IngredientRequest) (*models.Ingredient, error)
}

type ICommentService interface {
	ListForRecipe(ctx context.Context, recipeID uint) ([]models.Comment, error)
	Create(ctx context.Context, authorID, recipeID uint, text string) (*models.Comment, error)
	Get(ctx context.Context, id uint) (*models.Comment, error)
	Update(ctx context.Context, actorID, id uint, text string) (*models.Comment, error)
	Delete(ctx context.Context, actorID, id uint) error
}

type IRatingService interface {
	ListForRecipe(ctx context.Context, recipeID uint) ([]models.Rating, error)
	Create(ctx context.Context, authorID, recipeID uint, score int) (*models.Rating, error)
	Get(ctx context.Context, id uint) (*models.Rating, error)
	Update(ctx context.Context, actorID, id uint, score int) (*models.Rating, error)
	Delete(ctx context.Context, actorID, id uint) error
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	Get(ctx context.Context, id uint) (*models.Profile, error)
	GetByUser(ctx context.Context, userID uint) (*models.Profile, error)
	Update(ctx context.Context, actorID, id uint, req *types.ProfileUpdateRequest) (*models.Profile, error)
	SetPicture(ctx context.Context, actorID, id uint, img ImageUpload) (*models.Profile, error)
}

// IEmailService defines the interface for email operations
type IEmailService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendActivationEmail(ctx context.Context, user *models.User, link string) error
}

// ObjectStore is the subset of the S3 client the image service needs.
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	DeleteObject(ctx context.Context, key string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}
