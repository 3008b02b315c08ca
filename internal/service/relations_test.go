package service

import (
	"testing"

	"foodgram/internal/domain"
	"foodgram/internal/store"
	"foodgram/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteToggle(t *testing.T) {
	f := newFixture(t)
	user := testutil.SeedUser(t, f.db, "cook")
	tag := testutil.SeedTag(t, f.db, "lunch")
	recipe := testutil.SeedRecipe(t, f.db, user, "Salad", nil, tag)
	actor := ActorOf(user)

	got, err := f.svc.AddFavorite(f.ctx, actor, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Salad", got.Name)

	_, err = f.svc.AddFavorite(f.ctx, actor, recipe.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, f.svc.RemoveFavorite(f.ctx, actor, recipe.ID))
	assert.ErrorIs(t, f.svc.RemoveFavorite(f.ctx, actor, recipe.ID), domain.ErrBadRequest)

	_, err = f.svc.AddFavorite(f.ctx, actor, recipe.ID)
	assert.NoError(t, err, "delete then post succeeds again")
	assert.Equal(t, int64(1), count[domain.Favorite](t, f.db, ""))
}

func TestCartToggleIsIndependentOfFavorites(t *testing.T) {
	f := newFixture(t)
	user := testutil.SeedUser(t, f.db, "cook")
	recipe := testutil.SeedRecipe(t, f.db, user, "Salad", nil)
	actor := ActorOf(user)

	_, err := f.svc.AddFavorite(f.ctx, actor, recipe.ID)
	require.NoError(t, err)
	_, err = f.svc.AddToCart(f.ctx, actor, recipe.ID)
	require.NoError(t, err)
	_, err = f.svc.AddToCart(f.ctx, actor, recipe.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, f.svc.RemoveFromCart(f.ctx, actor, recipe.ID))
	assert.Equal(t, int64(1), count[domain.Favorite](t, f.db, ""))
	assert.Zero(t, count[domain.ShoppingCart](t, f.db, ""))
}

func TestRecipeTogglesOnMissingRecipe(t *testing.T) {
	f := newFixture(t)
	actor := ActorOf(testutil.SeedUser(t, f.db, "cook"))

	_, err := f.svc.AddToCart(f.ctx, actor, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.svc.RemoveFavorite(f.ctx, actor, 404), domain.ErrNotFound)

	_, err = f.svc.AddFavorite(f.ctx, Actor{}, 1)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestUniqueIndexMapsToConflict(t *testing.T) {
	f := newFixture(t)
	user := testutil.SeedUser(t, f.db, "cook")
	recipe := testutil.SeedRecipe(t, f.db, user, "Salad", nil)
	st := store.New(f.db)

	require.NoError(t, st.AddFavorite(f.ctx, user.ID, recipe.ID))
	assert.ErrorIs(t, st.AddFavorite(f.ctx, user.ID, recipe.ID), domain.ErrConflict)

	require.NoError(t, st.AddToCart(f.ctx, user.ID, recipe.ID))
	assert.ErrorIs(t, st.AddToCart(f.ctx, user.ID, recipe.ID), domain.ErrConflict)

	other := testutil.SeedUser(t, f.db, "other")
	require.NoError(t, st.AddFollow(f.ctx, user.ID, other.ID))
	assert.ErrorIs(t, st.AddFollow(f.ctx, user.ID, other.ID), domain.ErrConflict)
}

func TestFollowLifecycle(t *testing.T) {
	f := newFixture(t)
	user := testutil.SeedUser(t, f.db, "reader")
	author := testutil.SeedUser(t, f.db, "writer")
	actor := ActorOf(user)

	sub, err := f.svc.Follow(f.ctx, actor, author.ID, 0)
	require.NoError(t, err)
	assert.True(t, sub.IsSubscribed)
	assert.Equal(t, "writer", sub.User.Username)

	_, err = f.svc.Follow(f.ctx, actor, author.ID, 0)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	require.NoError(t, f.svc.Unfollow(f.ctx, actor, author.ID))
	assert.Zero(t, count[domain.Follow](t, f.db, ""))

	assert.ErrorIs(t, f.svc.Unfollow(f.ctx, actor, author.ID), domain.ErrBadRequest)

	_, err = f.svc.Follow(f.ctx, actor, 9999, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSelfFollowAlwaysFails(t *testing.T) {
	f := newFixture(t)
	user := testutil.SeedUser(t, f.db, "narcissus")
	other := testutil.SeedUser(t, f.db, "echo")
	actor := ActorOf(user)

	_, err := f.svc.Follow(f.ctx, actor, user.ID, 0)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	_, err = f.svc.Follow(f.ctx, actor, other.ID, 0)
	require.NoError(t, err)
	_, err = f.svc.Follow(f.ctx, actor, user.ID, 0)
	assert.ErrorIs(t, err, domain.ErrSelfFollow)
	assert.ErrorIs(t, f.svc.Unfollow(f.ctx, actor, user.ID), domain.ErrBadRequest)

	err = store.New(f.db).AddFollow(f.ctx, user.ID, user.ID)
	assert.ErrorIs(t, err, domain.ErrBadRequest, "the store refuses self-follow rows too")
	assert.Equal(t, int64(1), count[domain.Follow](t, f.db, ""))
}

func TestSubscriptions(t *testing.T) {
	f := newFixture(t)
	reader := testutil.SeedUser(t, f.db, "reader")
	first := testutil.SeedUser(t, f.db, "first")
	second := testutil.SeedUser(t, f.db, "second")
	for _, name := range []string{"a", "b", "c"} {
		testutil.SeedRecipe(t, f.db, first, name, nil)
	}
	actor := ActorOf(reader)

	_, err := f.svc.Follow(f.ctx, actor, first.ID, 0)
	require.NoError(t, err)
	_, err = f.svc.Follow(f.ctx, actor, second.ID, 0)
	require.NoError(t, err)

	page, err := f.svc.Subscriptions(f.ctx, actor, PageRequest{}, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, first.ID, page.Items[0].User.ID)
	assert.Len(t, page.Items[0].Recipes, 2)
	assert.Equal(t, int64(3), page.Items[0].RecipesCount)
	assert.Empty(t, page.Items[1].Recipes)

	_, err = f.svc.Subscriptions(f.ctx, Actor{}, PageRequest{}, 0)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
