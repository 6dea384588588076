package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/models"
)

const (
	msgDuplicateRating = "You have already rated this recipe."
	msgRatingMissing   = "You have not rated this recipe yet."
)

type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

func validScore(score int) error {
	if score < models.MinScore || score > models.MaxScore {
		return FieldError("score", fmt.Sprintf("Ensure this value is between %d and %d.", models.MinScore, models.MaxScore), nil)
	}
	return nil
}

func (s *RatingService) ListForRecipe(ctx context.Context, recipeID uint) ([]models.Rating, error) {
	db := s.db.WithContext(ctx)
	if err := recipeExists(db, recipeID); err != nil {
		return nil, err
	}
	var ratings []models.Rating
	err := db.Preload("Author").Where("recipe_id = ?", recipeID).Order("created_at ASC, id ASC").Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// Create stores the author's rating of a recipe. An author may rate a recipe once.
func (s *RatingService) Create(ctx context.Context, authorID, recipeID uint, score int) (*models.Rating, error) {
	if err := validScore(score); err != nil {
		return nil, err
	}

	rating := &models.Rating{RecipeID: recipeID, AuthorID: authorID, Score: score}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := recipeExists(tx, recipeID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Rating{}).
			Where("recipe_id = ? AND author_id = ?", recipeID, authorID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return FieldError(NonFieldErrors, msgDuplicateRating, ErrDuplicateRating)
		}
		return tx.Omit(clause.Associations).Create(rating).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, FieldError(NonFieldErrors, msgDuplicateRating, ErrDuplicateRating)
	}
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Uint("recipe_id", recipeID).Uint("author_id", authorID).Int("score", score).Msg("recipe rated")
	return s.Get(ctx, rating.ID)
}

func (s *RatingService) Get(ctx context.Context, id uint) (*models.Rating, error) {
	var rating models.Rating
	if err := s.db.WithContext(ctx).Preload("Author").First(&rating, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rating, nil
}

// Update changes the score of the actor's existing rating.
func (s *RatingService) Update(ctx context.Context, actorID, id uint, score int) (*models.Rating, error) {
	rating, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(actorID, rating.AuthorID); err != nil {
		return nil, err
	}
	if err := validScore(score); err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).Model(&models.Rating{}).
		Where("recipe_id = ? AND author_id = ?", rating.RecipeID, actorID).
		Updates(map[string]interface{}{"score": score})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, FieldError(NonFieldErrors, msgRatingMissing, ErrRatingNotFound)
	}
	return s.Get(ctx, id)
}

func (s *RatingService) Delete(ctx context.Context, actorID, id uint) error {
	rating, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwner(actorID, rating.AuthorID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Rating{}, id).Error
}
