package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const (
	msgTooFewIngredients = "A recipe must have at least 2 ingredients."
	msgInvalidCategory   = "Invalid category"
)

type RecipeService struct {
	db     *gorm.DB
	images *ImageService
}

func NewRecipeService(db *gorm.DB, images *ImageService) *RecipeService {
	return &RecipeService{db: db, images: images}
}

func withRecipeAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Category").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id ASC") }).
		Preload("Ingredients.Ingredient")
}

func (s *RecipeService) List(ctx context.Context, filter types.RecipeFilter) ([]models.Recipe, error) {
	q := withRecipeAssociations(s.db.WithContext(ctx)).Order("created_at DESC, id DESC")
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *RecipeService) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.load(s.db.WithContext(ctx), id)
}

func (s *RecipeService) load(db *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := withRecipeAssociations(db).First(&recipe, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &recipe, nil
}

// owned loads the bare recipe row and checks the actor wrote it.
func owned(db *gorm.DB, actorID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.First(&recipe, id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := checkOwner(actorID, recipe.AuthorID); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) Create(ctx context.Context, authorID uint, req *types.RecipeRequest) (*models.Recipe, error) {
	var id uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validateCategory(tx, req.CategoryID); err != nil {
			return err
		}
		lines, err := resolveIngredientLines(tx, req.Ingredients)
		if err != nil {
			return err
		}

		recipe := models.Recipe{
			AuthorID:   authorID,
			CategoryID: req.CategoryID,
		}
		applyRecipeRequest(&recipe, req)
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return err
		}
		id = recipe.ID
		return replaceIngredientLines(tx, recipe.ID, lines)
	})
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Uint("recipe_id", id).Uint("author_id", authorID).Msg("recipe created")
	return s.Get(ctx, id)
}

// Update replaces every writable field and the ingredient lines.
func (s *RecipeService) Update(ctx context.Context, actorID, id uint, req *types.RecipeRequest) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := owned(tx, actorID, id)
		if err != nil {
			return err
		}
		if err := validateCategory(tx, req.CategoryID); err != nil {
			return err
		}
		lines, err := resolveIngredientLines(tx, req.Ingredients)
		if err != nil {
			return err
		}

		applyRecipeRequest(recipe, req)
		recipe.CategoryID = req.CategoryID
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		return replaceIngredientLines(tx, recipe.ID, lines)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Patch changes only the fields present in req.
func (s *RecipeService) Patch(ctx context.Context, actorID, id uint, req *types.RecipePatchRequest) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := owned(tx, actorID, id)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		verr := NewValidationError()
		if req.Name != nil {
			if name := strings.TrimSpace(*req.Name); name == "" {
				verr.Add("name", "This field may not be blank.")
			} else {
				updates["name"] = name
			}
		}
		if req.Description != nil {
			if strings.TrimSpace(*req.Description) == "" {
				verr.Add("description", "This field may not be blank.")
			} else {
				updates["description"] = *req.Description
			}
		}
		if req.PrepTime != nil {
			updates["prep_time"] = *req.PrepTime
		}
		if req.PrepTimeUnit != nil {
			updates["prep_time_unit"] = *req.PrepTimeUnit
		}
		if req.CookTime != nil {
			updates["cook_time"] = *req.CookTime
		}
		if req.CookTimeUnits != nil {
			updates["cook_time_units"] = *req.CookTimeUnits
		}
		if req.Servings != nil {
			updates["servings"] = *req.Servings
		}
		if err := verr.OrNil(); err != nil {
			return err
		}
		if req.CategoryID.Set {
			if err := validateCategory(tx, req.CategoryID.Value); err != nil {
				return err
			}
			updates["category_id"] = req.CategoryID.Value
		}

		if req.Ingredients != nil {
			lines, err := resolveIngredientLines(tx, req.Ingredients)
			if err != nil {
				return err
			}
			if err := replaceIngredientLines(tx, recipe.ID, lines); err != nil {
				return err
			}
			// a lines-only patch still counts as a change to the recipe
			if len(updates) == 0 {
				updates["updated_at"] = time.Now()
			}
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(recipe).Omit(clause.Associations).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the recipe together with its ingredient lines, comments and ratings.
func (s *RecipeService) Delete(ctx context.Context, actorID, id uint) error {
	var imageKey string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := owned(tx, actorID, id)
		if err != nil {
			return err
		}
		imageKey = recipe.ImageKey
		for _, child := range []interface{}{&models.RecipeIngredient{}, &models.Comment{}, &models.Rating{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(recipe).Error
	})
	if err != nil {
		return err
	}

	s.images.Delete(ctx, imageKey)
	logging.Ctx(ctx).Info().Uint("recipe_id", id).Msg("recipe deleted")
	return nil
}

// Ingredients lists the lines of one recipe.
func (s *RecipeService) Ingredients(ctx context.Context, recipeID uint) ([]models.RecipeIngredient, error) {
	db := s.db.WithContext(ctx)
	if err := recipeExists(db, recipeID); err != nil {
		return nil, err
	}
	var lines []models.RecipeIngredient
	err := db.Preload("Ingredient").Where("recipe_id = ?", recipeID).Order("id ASC").Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// SetImage uploads a new recipe image and removes the previous one.
func (s *RecipeService) SetImage(ctx context.Context, actorID, id uint, img ImageUpload) (*models.Recipe, error) {
	db := s.db.WithContext(ctx)
	recipe, err := owned(db, actorID, id)
	if err != nil {
		return nil, err
	}

	key, err := s.images.Upload(ctx, recipeImagePrefix, "image", img)
	if err != nil {
		return nil, err
	}
	if err := db.Model(recipe).UpdateColumn("image_key", key).Error; err != nil {
		s.images.Delete(ctx, key)
		return nil, err
	}
	s.images.Delete(ctx, recipe.ImageKey)
	return s.Get(ctx, id)
}

func recipeExists(db *gorm.DB, id uint) error {
	var count int64
	if err := db.Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func applyRecipeRequest(recipe *models.Recipe, req *types.RecipeRequest) {
	recipe.Name = strings.TrimSpace(req.Name)
	recipe.Description = req.Description
	recipe.PrepTimeUnit = req.PrepTimeUnit
	recipe.CookTimeUnits = req.CookTimeUnits
	if req.PrepTime != nil {
		recipe.PrepTime = *req.PrepTime
	}
	if req.CookTime != nil {
		recipe.CookTime = *req.CookTime
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
}

func validateCategory(tx *gorm.DB, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	var category models.Category
	err := tx.First(&category, *categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return FieldError("category_id", msgInvalidCategory, ErrInvalidCategory)
	}
	return err
}

// resolveIngredientLines turns request lines into rows, creating ingredients
// referenced by name. It rejects recipes with fewer than two distinct ingredients.
func resolveIngredientLines(tx *gorm.DB, inputs []types.RecipeIngredientInput) ([]models.RecipeIngredient, error) {
	if len(inputs) < models.MinRecipeIngredients {
		return nil, FieldError("ingredients", msgTooFewIngredients, nil)
	}

	verr := NewValidationError()
	seen := make(map[uint]bool, len(inputs))
	lines := make([]models.RecipeIngredient, 0, len(inputs))
	for i, in := range inputs {
		field := fmt.Sprintf("ingredients[%d]", i)
		if !in.Unit.Valid() {
			verr.Add(field+".unit", fmt.Sprintf("%q is not a valid choice.", in.Unit))
		}
		if in.Quantity == 0 {
			verr.Add(field+".quantity", "Ensure this value is greater than or equal to 1.")
		}

		var ingredientID uint
		switch {
		case in.IngredientID != nil:
			var ingredient models.Ingredient
			err := tx.First(&ingredient, *in.IngredientID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				verr.Add(field+".ingredient_id", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *in.IngredientID))
				continue
			}
			if err != nil {
				return nil, err
			}
			ingredientID = ingredient.ID
		case strings.TrimSpace(in.IngredientName) != "":
			ingredient, err := findOrCreateIngredient(tx, in.IngredientName)
			if err != nil {
				return nil, err
			}
			ingredientID = ingredient.ID
		default:
			verr.Add(field, "Provide either ingredient_id or ingredient_name.")
			continue
		}

		if seen[ingredientID] {
			verr.Add("ingredients", "Each ingredient may appear only once in a recipe.")
			continue
		}
		seen[ingredientID] = true
		lines = append(lines, models.RecipeIngredient{
			IngredientID: ingredientID,
			Quantity:     in.Quantity,
			Unit:         in.Unit,
			Note:         strings.TrimSpace(in.Note),
		})
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if len(lines) < models.MinRecipeIngredients {
		return nil, FieldError("ingredients", msgTooFewIngredients, nil)
	}
	return lines, nil
}

func replaceIngredientLines(tx *gorm.DB, recipeID uint, lines []models.RecipeIngredient) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	for i := range lines {
		lines[i].RecipeID = recipeID
	}
	return tx.Omit(clause.Associations).Create(&lines).Error
}
