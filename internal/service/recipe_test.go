package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/mocks"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestCreateRecipeResolvesIngredients(t *testing.T) {
	db := newDB(t)
	svc := NewRecipeService(db, nil)
	author := createUser(t, db, "chef")
	sugar := &models.Ingredient{Name: "Sugar"}
	require.NoError(t, db.Create(sugar).Error)
	category := &models.Category{Name: "Breakfast"}
	require.NoError(t, db.Create(category).Error)

	req := recipeRequest("Flour")
	req.CategoryID = &category.ID
	req.Ingredients = append(req.Ingredients, types.RecipeIngredientInput{
		IngredientID: &sugar.ID,
		Quantity:     2,
		Unit:         models.UnitTablespoons,
		Note:         " heaped ",
	})

	recipe, err := svc.Create(context.Background(), author.ID, req)
	require.NoError(t, err)
	assert.Equal(t, author.ID, recipe.Author.ID)
	require.NotNil(t, recipe.Category)
	assert.Equal(t, "Breakfast", recipe.Category.Name)
	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "Flour", recipe.Ingredients[0].Ingredient.Name)
	assert.Equal(t, sugar.ID, recipe.Ingredients[1].IngredientID)
	assert.Equal(t, "heaped", recipe.Ingredients[1].Note)

	// a second recipe reuses the ingredient created by name
	_, err = svc.Create(context.Background(), author.ID, recipeRequest("flour", "Eggs"))
	require.NoError(t, err)
	var count int64
	db.Model(&models.Ingredient{}).Where("LOWER(name) = ?", "flour").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateRecipeRequiresTwoIngredients(t *testing.T) {
	db := newDB(t)
	svc := NewRecipeService(db, nil)
	author := createUser(t, db, "chef")

	_, err := svc.Create(context.Background(), author.ID, recipeRequest("Flour"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{msgTooFewIngredients}, verr.Fields["ingredients"])

	_, err = svc.Create(context.Background(), author.ID, recipeRequest("Flour", "FLOUR"))
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ingredients")

	var count int64
	db.Model(&models.Recipe{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateRecipeRejectsUnknownCategory(t *testing.T) {
	db := newDB(t)
	svc := NewRecipeService(db, nil)
	author := createUser(t, db, "chef")

	req := recipeRequest("Flour", "Milk")
	req.CategoryID = uintPtr(999)
	_, err := svc.Create(context.Background(), author.ID, req)

	assert.ErrorIs(t, err, ErrInvalidCategory)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Invalid category"}, verr.Fields["category_id"])
}

func TestCreateRecipeRejectsUnknownIngredientID(t *testing.T) {
	db := newDB(t)
	svc := NewRecipeService(db, nil)
	author := createUser(t, db, "chef")

	req := recipeRequest("Flour")
	req.Ingredients = append(req.Ingredients, types.RecipeIngredientInput{IngredientID: uintPtr(77), Quantity: 1, Unit: models.UnitPieces})
	_, err := svc.Create(context.Background(), author.ID, req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ingredients[1].ingredient_id")
}

func TestUpdateRecipeOwnership(t *testing.T) {
	db := newDB(t)
	svc := NewRecipeService(db, nil)
	author := createUser(t, db, "chef")
	other := createUser(t, db, "critic")
	recipe := createRecipe(t, db, author)

	req := recipeRequest("Rice", "Beans", "Salt")
	req.Name = "Rice and beans"

	_, err := svc.Update(context.Background(), other.ID, recipe.ID, req)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(context.Background(), author.ID, recipe.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Rice and beans", updated.Name)
	assert.Len(t, updated.Ingredients, 3)

	_, err = svc.Update(context.Background(), author.ID, 999, req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatchRecipe(t *testing.T) {
	db := newDB(t)
	svc := NewRecipeService(db, nil)
	author := createUser(t, db, "chef")
	recipe := createRecipe(t, db, author)
	category := &models.Category{Name: "Dessert"}
	require.NoError(t, db.Create(category).Error)

	name := "Crepes"
	patched, err := svc.Patch(context.Background(), author.ID, recipe.ID, &types.RecipePatchRequest{
		Name:       &name,
		CategoryID: types.NullableID{Set: true, Value: &category.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Crepes", patched.Name)
	assert.Equal(t, recipe.Description, patched.Description)
	assert.Len(t, patched.Ingredients, 2, "lines untouched when absent")
	require.NotNil(t, patched.CategoryID)

	patched, err = svc.Patch(context.Background(), author.ID, recipe.ID, &types.RecipePatchRequest{
		CategoryID: types.NullableID{Set: true},
	})
	require.NoError(t, err)
	assert.Nil(t, patched.CategoryID)

	_, err = svc.Patch(context.Background(), author.ID, recipe.ID, &types.RecipePatchRequest{
		Ingredients: []types.RecipeIngredientInput{},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ingredients")

	patched, err = svc.Patch(context.Background(), author.ID, recipe.ID, &types.RecipePatchRequest{
		Ingredients: recipeRequest("Oats", "Honey", "Yogurt").Ingredients,
	})
	require.NoError(t, err)
	require.Len(t, patched.Ingredients, 3)
	assert.Equal(t, "Oats", patched.Ingredients[0].Ingredient.Name)
}

func TestDeleteRecipeCascades(t *testing.T) {
	db := newDB(t)
	svc := NewRecipeService(db, nil)
	author := createUser(t, db, "chef")
	fan := createUser(t, db, "fan")
	recipe := createRecipe(t, db, author)

	_, err := NewCommentService(db).Create(context.Background(), fan.ID, recipe.ID, "Yum")
	require.NoError(t, err)
	_, err = NewRatingService(db).Create(context.Background(), fan.ID, recipe.ID, 5)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), fan.ID, recipe.ID), ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), author.ID, recipe.ID))

	for _, model := range []interface{}{&models.Recipe{}, &models.RecipeIngredient{}, &models.Comment{}, &models.Rating{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T", model)
	}
	var ingredients int64
	db.Model(&models.Ingredient{}).Count(&ingredients)
	assert.Equal(t, int64(2), ingredients, "ingredients outlive recipes")
}

func TestListRecipesFilters(t *testing.T) {
	db := newDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	soups := &models.Category{Name: "Soups"}
	require.NoError(t, db.Create(soups).Error)

	req := recipeRequest("Tomato", "Basil")
	req.Name = "Tomato soup"
	req.CategoryID = &soups.ID
	_, err := svc.Create(ctx, alice.ID, req)
	require.NoError(t, err)
	createRecipe(t, db, bob)

	all, err := svc.List(ctx, types.RecipeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCategory, err := svc.List(ctx, types.RecipeFilter{CategoryID: &soups.ID})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Tomato soup", byCategory[0].Name)

	byAuthor, err := svc.List(ctx, types.RecipeFilter{AuthorID: &bob.ID})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Pancakes", byAuthor[0].Name)

	bySearch, err := svc.List(ctx, types.RecipeFilter{Search: "SOUP"})
	require.NoError(t, err)
	assert.Len(t, bySearch, 1)
}

func TestRecipeIngredientsNotFound(t *testing.T) {
	db := newDB(t)
	svc := NewRecipeService(db, nil)

	_, err := svc.Ingredients(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetRecipeImage(t *testing.T) {
	db := newDB(t)
	store := new(mocks.MockObjectStore)
	svc := NewRecipeService(db, NewImageService(store))
	author := createUser(t, db, "chef")
	recipe := createRecipe(t, db, author)

	store.On("PutObject", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "recipe_images/") && strings.HasSuffix(key, ".png")
	}), "image/png", int64(len(pngHeader))).Return(nil).Twice()

	updated, err := svc.SetImage(context.Background(), author.ID, recipe.ID, ImageUpload{
		Filename: "photo.png",
		Size:     int64(len(pngHeader)),
		Body:     bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)
	require.NotEmpty(t, updated.ImageKey)

	// replacing the image removes the old object
	store.On("DeleteObject", mock.Anything, updated.ImageKey).Return(nil).Once()
	_, err = svc.SetImage(context.Background(), author.ID, recipe.ID, ImageUpload{
		Size: int64(len(pngHeader)),
		Body: bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestSetRecipeImageRejectsNonImages(t *testing.T) {
	db := newDB(t)
	store := new(mocks.MockObjectStore)
	svc := NewRecipeService(db, NewImageService(store))
	author := createUser(t, db, "chef")
	recipe := createRecipe(t, db, author)

	_, err := svc.SetImage(context.Background(), author.ID, recipe.ID, ImageUpload{
		Size: 11,
		Body: strings.NewReader("hello world"),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "image")

	_, err = svc.SetImage(context.Background(), author.ID, recipe.ID, ImageUpload{
		Size: MaxImageSize + 1,
		Body: bytes.NewReader(pngHeader),
	})
	require.ErrorAs(t, err, &verr)
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetRecipeImageWithoutStorage(t *testing.T) {
	db := newDB(t)
	svc := NewRecipeService(db, nil)
	author := createUser(t, db, "chef")
	recipe := createRecipe(t, db, author)

	_, err := svc.SetImage(context.Background(), author.ID, recipe.ID, ImageUpload{Body: bytes.NewReader(pngHeader)})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
