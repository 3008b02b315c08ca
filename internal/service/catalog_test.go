package service

import (
	"testing"

	"foodgram/internal/domain"
	"foodgram/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIngredientsPrefix(t *testing.T) {
	f := newFixture(t)
	testutil.SeedIngredient(t, f.db, "Sugar", "g")
	testutil.SeedIngredient(t, f.db, "sugar powder", "g")
	testutil.SeedIngredient(t, f.db, "salt", "g")

	all, err := f.svc.ListIngredients(f.ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matched, err := f.svc.ListIngredients(f.ctx, "SUG")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "Sugar", matched[0].Name)
	assert.Equal(t, "sugar powder", matched[1].Name)
}

func TestCreateTagInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	testutil.SeedTag(t, f.db, "breakfast")
	admin := ActorOf(testutil.SeedAdmin(t, f.db, "admin"))

	tags, err := f.svc.ListTags(f.ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	_, err = f.svc.CreateTag(f.ctx, admin, "Dinner", "dinner")
	require.NoError(t, err)

	tags, err = f.svc.ListTags(f.ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestCreateTagRules(t *testing.T) {
	f := newFixture(t)
	admin := ActorOf(testutil.SeedAdmin(t, f.db, "admin"))
	user := ActorOf(testutil.SeedUser(t, f.db, "user"))

	_, err := f.svc.CreateTag(f.ctx, user, "Lunch", "lunch")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.CreateTag(f.ctx, admin, "Lunch", "lunch time")
	requireFields(t, err, "slug")

	_, err = f.svc.CreateTag(f.ctx, admin, "Lunch", "lunch")
	require.NoError(t, err)
	_, err = f.svc.CreateTag(f.ctx, admin, "Lunch again", "lunch")
	requireFields(t, err, "slug")
}

func TestCreateAndImportIngredients(t *testing.T) {
	f := newFixture(t)
	admin := ActorOf(testutil.SeedAdmin(t, f.db, "admin"))

	item, err := f.svc.CreateIngredient(f.ctx, admin, "flour", "g")
	require.NoError(t, err)
	got, err := f.svc.GetIngredient(f.ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "g", got.MeasurementUnit)

	_, err = f.svc.CreateIngredient(f.ctx, admin, "flour", "g")
	requireFields(t, err, "name")

	n, err := f.svc.ImportIngredients(f.ctx, []domain.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "flour", MeasurementUnit: "kg"},
		{Name: "  ", MeasurementUnit: "g"},
		{Name: "water", MeasurementUnit: "ml"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, int64(3), count[domain.Ingredient](t, f.db, ""))
}
