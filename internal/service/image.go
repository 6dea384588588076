package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/logging"
)

const (
	MaxImageSize     = 5 << 20
	presignedURLTTL  = time.Hour
	sniffLength      = 512
	msgImageTooLarge = "Image must be 5 MB or smaller."
	msgImageType     = "Upload a valid image. Supported formats are JPEG, PNG and WebP."
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageUpload is an image received from a client.
type ImageUpload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

type ImageService struct {
	store ObjectStore
}

// NewImageService wraps store. A nil store disables uploads.
func NewImageService(store ObjectStore) *ImageService {
	return &ImageService{store: store}
}

func (s *ImageService) Enabled() bool {
	return s != nil && s.store != nil
}

// Upload validates the image and stores it under prefix. field names the
// request field in validation errors.
func (s *ImageService) Upload(ctx context.Context, prefix, field string, img ImageUpload) (string, error) {
	if !s.Enabled() {
		return "", ErrStorageUnavailable
	}
	if img.Size > MaxImageSize {
		return "", FieldError(field, msgImageTooLarge, nil)
	}

	head := make([]byte, sniffLength)
	n, err := io.ReadFull(img.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return "", FieldError(field, "The submitted file is empty.", nil)
	}

	contentType := http.DetectContentType(head)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", FieldError(field, msgImageType, nil)
	}

	key := path.Join(prefix, uuid.NewString()+ext)
	body := io.MultiReader(bytes.NewReader(head), img.Body)
	if err := s.store.PutObject(ctx, key, contentType, body, img.Size); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	logging.Ctx(ctx).Info().Str("key", key).Str("content_type", contentType).Int64("size", img.Size).Msg("image uploaded")
	return key, nil
}

// Delete removes key, logging failures. Deleting an old image never fails the request.
func (s *ImageService) Delete(ctx context.Context, key string) {
	if !s.Enabled() || key == "" {
		return
	}
	if err := s.store.DeleteObject(ctx, key); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to delete image")
	}
}

// URL returns a temporary read URL for key, or nil when there is no image.
func (s *ImageService) URL(ctx context.Context, key string) *string {
	if !s.Enabled() || key == "" {
		return nil
	}
	url, err := s.store.GeneratePresignedURL(ctx, key, presignedURLTTL)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to presign image URL")
		return nil
	}
	return &url
}

func profilePicturePrefix(username string) string {
	return path.Join("profile_pictures", username)
}

const recipeImagePrefix = "recipe_images"
