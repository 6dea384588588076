package service

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipeshare/backend/internal/models"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

func commentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", FieldError("text", "This field may not be blank.", nil)
	}
	return text, nil
}

// ListForRecipe returns a recipe's comments, oldest first.
func (s *CommentService) ListForRecipe(ctx context.Context, recipeID uint) ([]models.Comment, error) {
	db := s.db.WithContext(ctx)
	if err := recipeExists(db, recipeID); err != nil {
		return nil, err
	}
	var comments []models.Comment
	err := db.Preload("Author").Where("recipe_id = ?", recipeID).Order("created_at ASC, id ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *CommentService) Create(ctx context.Context, authorID, recipeID uint, text string) (*models.Comment, error) {
	text, err := commentText(text)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if err := recipeExists(db, recipeID); err != nil {
		return nil, err
	}
	comment := &models.Comment{RecipeID: recipeID, AuthorID: authorID, Text: text}
	if err := db.Omit(clause.Associations).Create(comment).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, comment.ID)
}

func (s *CommentService) Get(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &comment, nil
}

func (s *CommentService) Update(ctx context.Context, actorID, id uint, text string) (*models.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(actorID, comment.AuthorID); err != nil {
		return nil, err
	}
	text, err = commentText(text)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(comment).UpdateColumn("text", text).Error; err != nil {
		return nil, err
	}
	comment.Text = text
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actorID, id uint) error {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwner(actorID, comment.AuthorID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}
