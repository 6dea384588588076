package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/models"
)

func TestRatingUniquePerAuthor(t *testing.T) {
	db := newDB(t)
	svc := NewRatingService(db)
	ctx := context.Background()
	author := createUser(t, db, "chef")
	fan := createUser(t, db, "fan")
	recipe := createRecipe(t, db, author)

	rating, err := svc.Create(ctx, fan.ID, recipe.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, "fan", rating.Author.Username)

	_, err = svc.Create(ctx, fan.ID, recipe.ID, 2)
	assert.ErrorIs(t, err, ErrDuplicateRating)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"You have already rated this recipe."}, verr.Fields[NonFieldErrors])

	// another author may still rate
	_, err = svc.Create(ctx, author.ID, recipe.ID, 5)
	require.NoError(t, err)

	ratings, err := svc.ListForRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Len(t, ratings, 2)
}

func TestFeedbackListsAreScopedToRecipe(t *testing.T) {
	db := newDB(t)
	ratingSvc := NewRatingService(db)
	commentSvc := NewCommentService(db)
	ctx := context.Background()
	author := createUser(t, db, "chef")
	fan := createUser(t, db, "fan")
	first := createRecipe(t, db, author)
	second := createRecipe(t, db, author)

	_, err := ratingSvc.Create(ctx, fan.ID, first.ID, 3)
	require.NoError(t, err)
	_, err = commentSvc.Create(ctx, fan.ID, first.ID, "Nice")
	require.NoError(t, err)

	ratings, err := ratingSvc.ListForRecipe(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, ratings)
	comments, err := commentSvc.ListForRecipe(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	ratings, err = ratingSvc.ListForRecipe(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, first.ID, ratings[0].RecipeID)
	comments, err = commentSvc.ListForRecipe(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, first.ID, comments[0].RecipeID)
}

func TestRatingValidation(t *testing.T) {
	db := newDB(t)
	svc := NewRatingService(db)
	ctx := context.Background()
	author := createUser(t, db, "chef")
	recipe := createRecipe(t, db, author)

	for _, score := range []int{0, 6, -1} {
		_, err := svc.Create(ctx, author.ID, recipe.ID, score)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "score %d", score)
		assert.Contains(t, verr.Fields, "score")
	}

	_, err := svc.Create(ctx, author.ID, 999, 3)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.ListForRecipe(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRatingUpdateAndDeleteByAuthorOnly(t *testing.T) {
	db := newDB(t)
	svc := NewRatingService(db)
	ctx := context.Background()
	author := createUser(t, db, "chef")
	fan := createUser(t, db, "fan")
	recipe := createRecipe(t, db, author)
	rating, err := svc.Create(ctx, fan.ID, recipe.ID, 3)
	require.NoError(t, err)

	_, err = svc.Update(ctx, author.ID, rating.ID, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, fan.ID, rating.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Score)

	_, err = svc.Update(ctx, fan.ID, rating.ID, 9)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	assert.ErrorIs(t, svc.Delete(ctx, author.ID, rating.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, fan.ID, rating.ID))
	_, err = svc.Get(ctx, rating.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentLifecycle(t *testing.T) {
	db := newDB(t)
	svc := NewCommentService(db)
	ctx := context.Background()
	author := createUser(t, db, "chef")
	fan := createUser(t, db, "fan")
	recipe := createRecipe(t, db, author)

	_, err := svc.Create(ctx, fan.ID, recipe.ID, "   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "text")

	_, err = svc.Create(ctx, fan.ID, 999, "Nice")
	assert.ErrorIs(t, err, ErrNotFound)

	comment, err := svc.Create(ctx, fan.ID, recipe.ID, " Lovely ")
	require.NoError(t, err)
	assert.Equal(t, "Lovely", comment.Text)
	assert.Equal(t, "fan", comment.Author.Username)

	_, err = svc.Update(ctx, author.ID, comment.ID, "Hijacked")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, fan.ID, comment.ID, "Lovely, made it twice")
	require.NoError(t, err)
	assert.Equal(t, "Lovely, made it twice", updated.Text)

	comments, err := svc.ListForRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	assert.ErrorIs(t, svc.Delete(ctx, author.ID, comment.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, fan.ID, comment.ID))
	assert.ErrorIs(t, svc.Delete(ctx, fan.ID, comment.ID), ErrNotFound)
}

func TestCategoryNamesAreNormalized(t *testing.T) {
	db := newDB(t)
	svc := NewCategoryService(db)
	ctx := context.Background()

	category, err := svc.Create(ctx, "  main   course ")
	require.NoError(t, err)
	assert.Equal(t, "Main Course", category.Name)

	acronym, err := svc.Create(ctx, "BBQ and grill")
	require.NoError(t, err)
	assert.Equal(t, "BBQ And Grill", acronym.Name)

	_, err = svc.Create(ctx, "   ")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	updated, err := svc.Update(ctx, category.ID, "side dish")
	require.NoError(t, err)
	assert.Equal(t, "Side Dish", updated.Name)

	_, err = svc.Update(ctx, 999, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCategoryUncategorizesRecipes(t *testing.T) {
	db := newDB(t)
	svc := NewCategoryService(db)
	ctx := context.Background()
	author := createUser(t, db, "chef")
	category, err := svc.Create(ctx, "Breakfast")
	require.NoError(t, err)

	req := recipeRequest("Eggs", "Bacon")
	req.CategoryID = &category.ID
	recipe, err := NewRecipeService(db, nil).Create(ctx, author.ID, req)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, category.ID))

	var stored models.Recipe
	require.NoError(t, db.First(&stored, recipe.ID).Error)
	assert.Nil(t, stored.CategoryID)
	assert.ErrorIs(t, svc.Delete(ctx, category.ID), ErrNotFound)
}
