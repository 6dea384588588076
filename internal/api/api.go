package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client

	Auth        service.IAuthService
	Recipes     service.IRecipeService
	Categories  service.ICategoryService
	Ingredients service.IIngredientService
	Comments    service.ICommentService
	Ratings     service.IRatingService
	Profiles    service.IProfileService
	Images      *service.ImageService

	AuthLimiter  *middleware.RateLimiter
	WriteLimiter *middleware.RateLimiter
}

// NewDeps builds the services over db. store and redisClient may be nil,
// which disables image uploads and rate limiting respectively.
func NewDeps(db *gorm.DB, cfg *config.Config, mailer service.IEmailService, store service.ObjectStore, redisClient *redis.Client) Deps {
	images := service.NewImageService(store)
	deps := Deps{
		DB:          db,
		Redis:       redisClient,
		Auth:        service.NewAuthService(db, cfg, mailer),
		Recipes:     service.NewRecipeService(db, images),
		Categories:  service.NewCategoryService(db),
		Ingredients: service.NewIngredientService(db),
		Comments:    service.NewCommentService(db),
		Ratings:     service.NewRatingService(db),
		Profiles:    service.NewProfileService(db, images),
		Images:      images,
	}
	if redisClient != nil {
		deps.AuthLimiter = middleware.NewAuthRateLimiter(redisClient)
		deps.WriteLimiter = middleware.NewWriteRateLimiter(redisClient)
	}
	return deps
}

// RegisterRoutes registers all API routes. Every /api request is
// authenticated when it carries a bearer token; individual routes decide
// whether one is required.
func RegisterRoutes(router *gin.Engine, deps Deps) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	health := NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", health.HealthCheck)
	router.GET("/api/health", health.HealthCheck)

	api := router.Group("/api",
		middleware.OptionalAuth(deps.Auth),
		middleware.RequireActiveUser(deps.Auth),
	)

	NewAuthHandler(deps.Auth, deps.AuthLimiter).RegisterRoutes(api)
	NewRecipeHandler(deps.Recipes, deps.Images, deps.WriteLimiter).RegisterRoutes(api)
	NewCommentHandler(deps.Comments, deps.WriteLimiter).RegisterRoutes(api)
	NewRatingHandler(deps.Ratings, deps.WriteLimiter).RegisterRoutes(api)
	NewCategoryHandler(deps.Categories).RegisterRoutes(api)
	NewIngredientHandler(deps.Ingredients, deps.WriteLimiter).RegisterRoutes(api)
	NewProfileHandler(deps.Profiles, deps.Images).RegisterRoutes(api)
	RegisterRateLimitRoutes(api, deps.WriteLimiter)
	return nil
}
