package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const msgRegistered = "User registered successfully. Check your email to activate your account."

type AuthHandler struct {
	authService service.IAuthService
	limiter     *middleware.RateLimiter
}

func NewAuthHandler(authService service.IAuthService, limiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	throttled := router.Group("", h.limiter.RateLimitMiddleware())
	{
		throttled.POST("/register", h.Register)
		throttled.POST("/token", h.Token)
		throttled.POST("/token/refresh", h.Refresh)
	}
	router.GET("/activate/:uid/:token", h.Activate)
}

// Register creates an inactive account and mails its activation link.
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if user != nil {
			logging.Ctx(c.Request.Context()).Error().Err(err).Uint("user_id", user.ID).Msg("registered user but activation email failed")
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.RegisterResponse{
		User:    userSummary(*user),
		Message: msgRegistered,
	})
}

// Token exchanges credentials for an access/refresh pair.
func (h *AuthHandler) Token(c *gin.Context) {
	var req types.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	pair, err := h.authService.IssueTokenPair(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req types.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	access, err := h.authService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.AccessResponse{Access: access})
}

func (h *AuthHandler) Activate(c *gin.Context) {
	if _, err := h.authService.Activate(c.Request.Context(), c.Param("uid"), c.Param("token")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account activated successfully"})
}
