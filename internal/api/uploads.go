package api

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// formImage opens the multipart file in field. The caller closes the returned file.
func formImage(c *gin.Context, field string) (service.ImageUpload, multipart.File, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, validationResponse(map[string][]string{
			field: {"No file was submitted."},
		}))
		return service.ImageUpload{}, nil, false
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return service.ImageUpload{}, nil, false
	}
	return service.ImageUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	}, file, true
}

// actorID is the authenticated caller. Routes using it sit behind RequireAuth.
func actorID(c *gin.Context) uint {
	id, _ := middleware.UserID(c)
	return id
}
