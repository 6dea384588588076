package types

import (
	"time"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// UserSummary is the nested, public view of a user.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type IngredientResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type RecipeIngredientResponse struct {
	ID         uint               `json:"id"`
	Recipe     uint               `json:"recipe"`
	Ingredient IngredientResponse `json:"ingredient"`
	Quantity   uint               `json:"quantity"`
	Unit       models.Unit        `json:"unit"`
	UnitLabel  string             `json:"unit_label"`
	Note       string             `json:"note"`
}

// RecipeResponse is the nested read view of a recipe.
type RecipeResponse struct {
	ID            uint                       `json:"id"`
	Image         *string                    `json:"image"`
	Category      *CategoryResponse          `json:"category"`
	Name          string                     `json:"name"`
	Description   string                     `json:"description"`
	Author        UserSummary                `json:"author"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
	PrepTime      uint                       `json:"prep_time"`
	PrepTimeUnit  models.TimeUnit            `json:"prep_time_unit"`
	CookTime      uint                       `json:"cook_time"`
	CookTimeUnits models.TimeUnit            `json:"cook_time_units"`
	Servings      uint                       `json:"servings"`
	Ingredients   []RecipeIngredientResponse `json:"ingredients"`
}

type CommentResponse struct {
	ID        uint        `json:"id"`
	Recipe    uint        `json:"recipe"`
	Author    UserSummary `json:"author"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}

type RatingResponse struct {
	ID         uint        `json:"id"`
	Recipe     uint        `json:"recipe"`
	Author     UserSummary `json:"author"`
	Score      int         `json:"score"`
	ScoreLabel string      `json:"score_label"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type ProfileResponse struct {
	ID             uint        `json:"id"`
	User           UserSummary `json:"user"`
	Bio            string      `json:"bio"`
	Website        string      `json:"website"`
	ProfilePicture *string     `json:"profile_picture"`
}

type RegisterResponse struct {
	User    UserSummary `json:"user"`
	Message string      `json:"message"`
}

type AccessResponse struct {
	Access string `json:"access"`
}
