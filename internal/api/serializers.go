package api

import (
	"context"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

func userSummary(u models.User) types.UserSummary {
	return types.UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

func categoryResponse(c models.Category) types.CategoryResponse {
	return types.CategoryResponse{ID: c.ID, Name: c.Name}
}

func ingredientResponse(i models.Ingredient) types.IngredientResponse {
	return types.IngredientResponse{ID: i.ID, Name: i.Name, Description: i.Description}
}

func ingredientResponses(in []models.Ingredient) []types.IngredientResponse {
	out := make([]types.IngredientResponse, 0, len(in))
	for _, i := range in {
		out = append(out, ingredientResponse(i))
	}
	return out
}

func recipeIngredientResponses(lines []models.RecipeIngredient) []types.RecipeIngredientResponse {
	out := make([]types.RecipeIngredientResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, types.RecipeIngredientResponse{
			ID:         l.ID,
			Recipe:     l.RecipeID,
			Ingredient: ingredientResponse(l.Ingredient),
			Quantity:   l.Quantity,
			Unit:       l.Unit,
			UnitLabel:  l.Unit.Label(),
			Note:       l.Note,
		})
	}
	return out
}

func recipeResponse(ctx context.Context, images *service.ImageService, r *models.Recipe) types.RecipeResponse {
	resp := types.RecipeResponse{
		ID:            r.ID,
		Image:         images.URL(ctx, r.ImageKey),
		Name:          r.Name,
		Description:   r.Description,
		Author:        userSummary(r.Author),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		PrepTime:      r.PrepTime,
		PrepTimeUnit:  r.PrepTimeUnit,
		CookTime:      r.CookTime,
		CookTimeUnits: r.CookTimeUnits,
		Servings:      r.Servings,
		Ingredients:   recipeIngredientResponses(r.Ingredients),
	}
	if r.Category != nil {
		c := categoryResponse(*r.Category)
		resp.Category = &c
	}
	return resp
}

func commentResponse(c *models.Comment) types.CommentResponse {
	return types.CommentResponse{
		ID:        c.ID,
		Recipe:    c.RecipeID,
		Author:    userSummary(c.Author),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func ratingResponse(r *models.Rating) types.RatingResponse {
	return types.RatingResponse{
		ID:         r.ID,
		Recipe:     r.RecipeID,
		Author:     userSummary(r.Author),
		Score:      r.Score,
		ScoreLabel: models.ScoreLabel(r.Score),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func profileResponse(ctx context.Context, images *service.ImageService, p *models.Profile) types.ProfileResponse {
	return types.ProfileResponse{
		ID:             p.ID,
		User:           userSummary(p.User),
		Bio:            p.Bio,
		Website:        p.Website,
		ProfilePicture: images.URL(ctx, p.PictureKey),
	}
}
