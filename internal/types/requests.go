package types

import (
	"bytes"
	"encoding/json"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// RegisterRequest represents the request body of POST /api/register
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
	Bio       string `json:"bio"`
	Website   string `json:"website" binding:"omitempty,url,max=200"`
}

type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RecipeIngredientInput is one ingredient line of a recipe write. Either
// IngredientID references an existing ingredient or IngredientName names one
// that is looked up or created.
type RecipeIngredientInput struct {
	IngredientID   *uint       `json:"ingredient_id"`
	IngredientName string      `json:"ingredient_name" binding:"max=100"`
	Quantity       uint        `json:"quantity" binding:"required,min=1"`
	Unit           models.Unit `json:"unit" binding:"required,unit"`
	Note           string      `json:"note" binding:"max=100"`
}

// RecipeRequest is the flat write view used by POST and PUT.
type RecipeRequest struct {
	Name          string                  `json:"name" binding:"required,max=200"`
	Description   string                  `json:"description" binding:"required"`
	CategoryID    *uint                   `json:"category_id"`
	PrepTime      *uint                   `json:"prep_time" binding:"required"`
	PrepTimeUnit  models.TimeUnit         `json:"prep_time_unit" binding:"timeunit"`
	CookTime      *uint                   `json:"cook_time" binding:"required"`
	CookTimeUnits models.TimeUnit         `json:"cook_time_units" binding:"timeunit"`
	Servings      *uint                   `json:"servings" binding:"required"`
	Ingredients   []RecipeIngredientInput `json:"ingredients" binding:"required,dive"`
}

// RecipePatchRequest carries only the fields present in a PATCH body.
type RecipePatchRequest struct {
	Name          *string                 `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string                 `json:"description" binding:"omitempty,min=1"`
	CategoryID    NullableID              `json:"category_id"`
	PrepTime      *uint                   `json:"prep_time"`
	PrepTimeUnit  *models.TimeUnit        `json:"prep_time_unit" binding:"omitempty,timeunit"`
	CookTime      *uint                   `json:"cook_time"`
	CookTimeUnits *models.TimeUnit        `json:"cook_time_units" binding:"omitempty,timeunit"`
	Servings      *uint                   `json:"servings"`
	Ingredients   []RecipeIngredientInput `json:"ingredients" binding:"omitempty,dive"`
}

// NullableID distinguishes an absent field from an explicit null.
type NullableID struct {
	Set   bool
	Value *uint
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type IngredientRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type RatingRequest struct {
	Score int `json:"score" binding:"required,min=1,max=5"`
}

// ProfileUpdateRequest is used for both PUT and PATCH; nil fields are left untouched.
type ProfileUpdateRequest struct {
	Bio     *string `json:"bio"`
	Website *string `json:"website" binding:"omitempty,max=200"`
}

// RecipeFilter narrows GET /api/recipes/.
type RecipeFilter struct {
	CategoryID *uint
	AuthorID   *uint
	Search     string
}
