package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

func (s *IngredientService) List(ctx context.Context, search string) ([]models.Ingredient, error) {
	q := s.db.WithContext(ctx).Order("name ASC, id ASC")
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var ingredients []models.Ingredient
	if err := q.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *IngredientService) Get(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ingredient, nil
}

func (s *IngredientService) Create(ctx context.Context, req *types.IngredientRequest) (*models.Ingredient, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, FieldError("name", "This field may not be blank.", nil)
	}
	ingredient := &models.Ingredient{Name: name, Description: strings.TrimSpace(req.Description)}
	if err := s.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// FindOrCreate returns the ingredient called name, creating it if needed.
func (s *IngredientService) FindOrCreate(ctx context.Context, name string) (*models.Ingredient, error) {
	return findOrCreateIngredient(s.db.WithContext(ctx), name)
}

// findOrCreateIngredient matches names case-insensitively.
func findOrCreateIngredient(tx *gorm.DB, name string) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	var ingredient models.Ingredient
	err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).Order("id ASC").First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	ingredient = models.Ingredient{Name: name}
	if err := tx.Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}
