package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type ProfileHandler struct {
	profileService service.IProfileService
	images         *service.ImageService
}

func NewProfileHandler(profileService service.IProfileService, images *service.ImageService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, images: images}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile", middleware.RequireAuth(), h.GetOwnProfile)

	profiles := router.Group("/profiles")
	{
		profiles.GET("/:id", h.GetProfile)
		profiles.PUT("/:id", middleware.RequireAuth(), h.UpdateProfile)
		profiles.PATCH("/:id", middleware.RequireAuth(), h.UpdateProfile)
		profiles.POST("/:id/picture", middleware.RequireAuth(), h.UploadPicture)
	}
}

// GetOwnProfile returns the authenticated user's profile
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	profile, err := h.profileService.GetByUser(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse(c.Request.Context(), h.images, profile))
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	profile, err := h.profileService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse(c.Request.Context(), h.images, profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	profile, err := h.profileService.Update(c.Request.Context(), actorID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse(c.Request.Context(), h.images, profile))
}

func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	img, file, ok := formImage(c, "picture")
	if !ok {
		return
	}
	defer file.Close()

	profile, err := h.profileService.SetPicture(c.Request.Context(), actorID(c), id, img)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse(c.Request.Context(), h.images, profile))
}
