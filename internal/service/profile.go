package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type ProfileService struct {
	db       *gorm.DB
	images   *ImageService
	validate *validator.Validate
}

func NewProfileService(db *gorm.DB, images *ImageService) *ProfileService {
	return &ProfileService{db: db, images: images, validate: validator.New()}
}

func (s *ProfileService) Get(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Preload("User").First(&profile, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

func (s *ProfileService) GetByUser(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

// Update applies the non-nil fields of req to the actor's own profile.
func (s *ProfileService) Update(ctx context.Context, actorID, id uint, req *types.ProfileUpdateRequest) (*models.Profile, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(actorID, profile.UserID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Website != nil {
		website := strings.TrimSpace(*req.Website)
		if website != "" {
			if err := s.validate.Var(website, "url,max=200"); err != nil {
				return nil, FieldError("website", "Enter a valid URL.", nil)
			}
		}
		updates["website"] = website
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(profile).Omit("User").Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// SetPicture stores a new profile picture and removes the previous one.
func (s *ProfileService) SetPicture(ctx context.Context, actorID, id uint, img ImageUpload) (*models.Profile, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(actorID, profile.UserID); err != nil {
		return nil, err
	}

	key, err := s.images.Upload(ctx, profilePicturePrefix(profile.User.Username), "picture", img)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(profile).UpdateColumn("picture_key", key).Error; err != nil {
		s.images.Delete(ctx, key)
		return nil, err
	}
	s.images.Delete(ctx, profile.PictureKey)
	return s.Get(ctx, id)
}
