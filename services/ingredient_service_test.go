package services

import (
	"context"
	"testing"

	"github.com/jaychung003/food-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewIngredientService(db)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))
	require.NoError(t, svc.Seed(ctx))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 13)
}

func TestIngredientQueries(t *testing.T) {
	db := newTestDB(t)
	svc := NewIngredientService(db)
	ctx := context.Background()
	require.NoError(t, svc.Seed(ctx))

	dairy, err := svc.ListByCategory(ctx, "dairy")
	require.NoError(t, err)
	require.Len(t, dairy, 3)
	assert.Equal(t, "cheese", dairy[0].Name) // name-ordered

	// Search matches descriptions too.
	hits, err := svc.Search(ctx, "Lactose")
	require.NoError(t, err)
	assert.Len(t, hits, 3)

	hits, err = svc.Search(ctx, "rice")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "rice", hits[0].Name)
}

func TestIngredientCreateNormalizesName(t *testing.T) {
	db := newTestDB(t)
	svc := NewIngredientService(db)
	ctx := context.Background()

	ing := &models.Ingredient{Name: "  Lentils ", Category: "fodmap", IsTrigger: true}
	require.NoError(t, svc.Create(ctx, ing))
	assert.Equal(t, "lentils", ing.Name)
}
