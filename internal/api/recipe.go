package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type RecipeHandler struct {
	recipeService service.IRecipeService
	images        *service.ImageService
	writeLimiter  *middleware.RateLimiter
}

func NewRecipeHandler(recipeService service.IRecipeService, images *service.ImageService, writeLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		images:        images,
		writeLimiter:  writeLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/", h.ListRecipes)
		recipes.POST("", middleware.RequireAuth(), h.writeLimiter.RateLimitMiddleware(), h.CreateRecipe)
		recipes.POST("/", middleware.RequireAuth(), h.writeLimiter.RateLimitMiddleware(), h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", middleware.RequireAuth(), h.UpdateRecipe)
		recipes.PATCH("/:id", middleware.RequireAuth(), h.PatchRecipe)
		recipes.DELETE("/:id", middleware.RequireAuth(), h.DeleteRecipe)
		recipes.GET("/:id/ingredients", h.ListRecipeIngredients)
		recipes.POST("/:id/image", middleware.RequireAuth(), h.UploadImage)
	}
}

// ListRecipes supports ?category=, ?author= and ?search=.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var filter types.RecipeFilter
	var ok bool
	if filter.CategoryID, ok = queryID(c, "category"); !ok {
		return
	}
	if filter.AuthorID, ok = queryID(c, "author"); !ok {
		return
	}
	filter.Search = strings.TrimSpace(c.Query("search"))

	recipes, err := h.recipeService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]types.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, recipeResponse(c.Request.Context(), h.images, &recipes[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipeResponse(c.Request.Context(), h.images, recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), actorID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipeResponse(c.Request.Context(), h.images, recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), actorID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipeResponse(c.Request.Context(), h.images, recipe))
}

func (h *RecipeHandler) PatchRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.RecipePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := h.recipeService.Patch(c.Request.Context(), actorID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipeResponse(c.Request.Context(), h.images, recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.recipeService.Delete(c.Request.Context(), actorID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) ListRecipeIngredients(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	lines, err := h.recipeService.Ingredients(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipeIngredientResponses(lines))
}

// UploadImage replaces the recipe image with the multipart "image" file.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	img, file, ok := formImage(c, "image")
	if !ok {
		return
	}
	defer file.Close()

	recipe, err := h.recipeService.SetImage(c.Request.Context(), actorID(c), id, img)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipeResponse(c.Request.Context(), h.images, recipe))
}
