package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type RatingHandler struct {
	ratingService service.IRatingService
	writeLimiter  *middleware.RateLimiter
}

func NewRatingHandler(ratingService service.IRatingService, writeLimiter *middleware.RateLimiter) *RatingHandler {
	return &RatingHandler{ratingService: ratingService, writeLimiter: writeLimiter}
}

// RegisterRoutes keeps a recipe's rating list behind authentication; single
// ratings are public.
func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes/:id/ratings", middleware.RequireAuth(), h.ListRecipeRatings)
	router.POST("/recipes/:id/ratings", middleware.RequireAuth(), h.writeLimiter.RateLimitMiddleware(), h.CreateRating)

	ratings := router.Group("/ratings")
	{
		ratings.GET("/:id", h.GetRating)
		ratings.PUT("/:id", middleware.RequireAuth(), h.UpdateRating)
		ratings.PATCH("/:id", middleware.RequireAuth(), h.UpdateRating)
		ratings.DELETE("/:id", middleware.RequireAuth(), h.DeleteRating)
	}
}

func (h *RatingHandler) ListRecipeRatings(c *gin.Context) {
	recipeID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ratings, err := h.ratingService.ListForRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]types.RatingResponse, 0, len(ratings))
	for i := range ratings {
		resp = append(resp, ratingResponse(&ratings[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RatingHandler) CreateRating(c *gin.Context) {
	recipeID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	rating, err := h.ratingService.Create(c.Request.Context(), actorID(c), recipeID, req.Score)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ratingResponse(rating))
}

func (h *RatingHandler) GetRating(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rating, err := h.ratingService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratingResponse(rating))
}

func (h *RatingHandler) UpdateRating(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	rating, err := h.ratingService.Update(c.Request.Context(), actorID(c), id, req.Score)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratingResponse(rating))
}

func (h *RatingHandler) DeleteRating(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.ratingService.Delete(c.Request.Context(), actorID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
