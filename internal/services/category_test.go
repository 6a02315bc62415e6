package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutridash/nutridash-server/internal/classify"
	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store/memstore"
)

func TestCategoryService_ListMergesExplicitAndDerived(t *testing.T) {
	ms := memstore.New().
		SeedCategory(&model.CategoryRecord{CategoryID: "c1", Name: "Pré-treino"}).
		SeedMeal(&model.Meal{OwnerID: "u1", Description: "banana", CategoryID: "c1"}).
		SeedMeal(&model.Meal{OwnerID: "u1", Description: "arroz com frango"}).
		SeedMeal(&model.Meal{OwnerID: "u1", Description: "bife grelhado"})
	svc := NewCategoryService(ms)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Explicit categories sort first.
	assert.Equal(t, model.CategoryExplicit, views[0].Kind)
	assert.Equal(t, "Pré-treino", views[0].Name)
	assert.Equal(t, 1, views[0].MealCount)

	assert.Equal(t, model.CategoryDerived, views[1].Kind)
	assert.Equal(t, classify.CategoryLunch, views[1].Name)
	assert.Equal(t, 2, views[1].MealCount)
}

func TestCategoryService_CreateAssignsID(t *testing.T) {
	svc := NewCategoryService(memstore.New())

	rec, err := svc.Create(context.Background(), "  Pré-treino  ", "antes do treino")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.CategoryID)
	assert.Equal(t, "Pré-treino", rec.Name)

	_, err = svc.Create(context.Background(), "   ", "")
	assert.True(t, model.IsValidationError(err))
}

func TestCategoryService_RenameEmptyNameMutatesNothing(t *testing.T) {
	ms := memstore.New().SeedCategory(&model.CategoryRecord{CategoryID: "c1", Name: "Original"})
	svc := NewCategoryService(ms)

	_, err := svc.Rename(context.Background(), "c1", "   ")
	assert.True(t, model.IsValidationError(err))

	rec, err := ms.Categories().Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Original", rec.Name)
}

func TestCategoryService_RenameDoesNotStack(t *testing.T) {
	ms := memstore.New().
		SeedCategory(&model.CategoryRecord{CategoryID: "c1", Name: "Original", Description: "desc"}).
		SeedMeal(&model.Meal{OwnerID: "u1", Description: "banana", CategoryID: "c1"})
	svc := NewCategoryService(ms)

	_, err := svc.Rename(context.Background(), "c1", "Primeiro")
	require.NoError(t, err)
	rec, err := svc.Rename(context.Background(), "c1", "Segundo")
	require.NoError(t, err)
	assert.Equal(t, "Segundo", rec.Name)
	assert.Equal(t, "desc", rec.Description, "rename only touches the name")

	// Membership is by stored id; the meal row is untouched.
	meals, err := ms.Meals().ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "banana", meals[0].Description)
	assert.Equal(t, "c1", meals[0].CategoryID)
}

func TestCategoryService_DeleteFallsBackToDerived(t *testing.T) {
	ms := memstore.New().
		SeedCategory(&model.CategoryRecord{CategoryID: "c1", Name: "Pré-treino"}).
		SeedMeal(&model.Meal{OwnerID: "u1", Description: "sopa de legumes", CategoryID: "c1"})
	svc := NewCategoryService(ms)

	require.NoError(t, svc.Delete(context.Background(), "c1"))

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, model.CategoryDerived, views[0].Kind)
	assert.Equal(t, classify.CategoryDinner, views[0].Name)
}
