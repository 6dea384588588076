package service

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// NormalizeCategoryName collapses whitespace and capitalises each word,
// leaving the remaining letters as entered.
func NormalizeCategoryName(name string) string {
	return cases.Title(language.English, cases.NoLower).String(strings.Join(strings.Fields(name), " "))
}

func validCategoryName(name string) (string, error) {
	name = NormalizeCategoryName(name)
	if name == "" {
		return "", FieldError("name", "This field may not be blank.", nil)
	}
	if len([]rune(name)) > 100 {
		return "", FieldError("name", "Ensure this field has no more than 100 characters.", nil)
	}
	return name, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	name, err := validCategoryName(name)
	if err != nil {
		return nil, err
	}
	category := &models.Category{Name: name}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, name string) (*models.Category, error) {
	name, err := validCategoryName(name)
	if err != nil {
		return nil, err
	}
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(category).Update("name", name).Error; err != nil {
		return nil, err
	}
	category.Name = name
	return category, nil
}

// Delete removes the category; its recipes become uncategorized.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&models.Recipe{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}
