package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type CommentHandler struct {
	commentService service.ICommentService
	writeLimiter   *middleware.RateLimiter
}

func NewCommentHandler(commentService service.ICommentService, writeLimiter *middleware.RateLimiter) *CommentHandler {
	return &CommentHandler{commentService: commentService, writeLimiter: writeLimiter}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes/:id/comments", h.ListRecipeComments)
	router.POST("/recipes/:id/comments", middleware.RequireAuth(), h.writeLimiter.RateLimitMiddleware(), h.CreateComment)

	comments := router.Group("/comments")
	{
		comments.GET("/:id", h.GetComment)
		comments.PUT("/:id", middleware.RequireAuth(), h.UpdateComment)
		comments.PATCH("/:id", middleware.RequireAuth(), h.UpdateComment)
		comments.DELETE("/:id", middleware.RequireAuth(), h.DeleteComment)
	}
}

func (h *CommentHandler) ListRecipeComments(c *gin.Context) {
	recipeID, ok := parseID(c, "id")
	if !ok {
		return
	}
	comments, err := h.commentService.ListForRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]types.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, commentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	recipeID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	comment, err := h.commentService.Create(c.Request.Context(), actorID(c), recipeID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentResponse(comment))
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	comment, err := h.commentService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentResponse(comment))
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	comment, err := h.commentService.Update(c.Request.Context(), actorID(c), id, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentResponse(comment))
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.commentService.Delete(c.Request.Context(), actorID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
