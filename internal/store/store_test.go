package store

import (
	"context"
	"errors"
	"testing"

	"foodgram/internal/domain"
	"foodgram/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePrefix(t *testing.T) {
	assert.Equal(t, "abc%", likePrefix("abc"))
	assert.Equal(t, "50!%!_off!!%", likePrefix("50%_off!"))
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	boom := errors.New("boom")
	assert.Equal(t, boom, translate(boom))
}

func TestNameFilterMatchesLiterally(t *testing.T) {
	gdb := testutil.DB(t)
	s := New(gdb)
	ctx := context.Background()
	author := testutil.SeedUser(t, gdb, "cook")
	testutil.SeedRecipe(t, gdb, author, "100% juice", nil)
	testutil.SeedRecipe(t, gdb, author, "100 ways", nil)

	recipes, total, err := s.ListRecipes(ctx, RecipeFilter{NamePrefix: "100%"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recipes, 1)
	assert.Equal(t, "100% juice", recipes[0].Name)
	assert.Equal(t, "cook", recipes[0].Author.Username)
}

func TestTransactionRollsBack(t *testing.T) {
	gdb := testutil.DB(t)
	s := New(gdb)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx *Store) error {
		if err := tx.CreateTag(ctx, &domain.Tag{Name: "a", Slug: "a"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	tags, err := s.ListTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestRecipeIngredientUniquePerRecipe(t *testing.T) {
	gdb := testutil.DB(t)
	s := New(gdb)
	ctx := context.Background()
	author := testutil.SeedUser(t, gdb, "cook")
	flour := testutil.SeedIngredient(t, gdb, "flour", "g")
	recipe := testutil.SeedRecipe(t, gdb, author, "Bread", []domain.IngredientAmount{{ID: flour.ID, Amount: 1}})

	err := s.AddRecipeIngredients(ctx, recipe.ID, []domain.IngredientAmount{{ID: flour.ID, Amount: 2}})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = s.AddRecipeIngredients(ctx, recipe.ID, []domain.IngredientAmount{{ID: 999, Amount: 2}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "unknown ingredient is a foreign key violation")
}

func TestMissingIDs(t *testing.T) {
	gdb := testutil.DB(t)
	s := New(gdb)
	tag := testutil.SeedTag(t, gdb, "soup")

	missing, err := s.MissingTagIDs(context.Background(), []uint{tag.ID, 77, 78})
	require.NoError(t, err)
	assert.Equal(t, []uint{77, 78}, missing)
}

func TestDeletingUserCascades(t *testing.T) {
	gdb := testutil.DB(t)
	s := New(gdb)
	ctx := context.Background()
	author := testutil.SeedUser(t, gdb, "author")
	reader := testutil.SeedUser(t, gdb, "reader")
	recipe := testutil.SeedRecipe(t, gdb, author, "Stew", nil)
	testutil.SeedCart(t, gdb, reader, recipe)
	require.NoError(t, s.AddFollow(ctx, reader.ID, author.ID))

	require.NoError(t, s.DeleteUser(ctx, author.ID))

	found, err := s.RecipeExists(ctx, recipe.ID)
	require.NoError(t, err)
	assert.False(t, found)
	rows, err := s.CartWithIngredients(ctx, reader.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
	following, total, err := s.ListFollowing(ctx, reader.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, following)

	assert.ErrorIs(t, s.DeleteUser(ctx, author.ID), domain.ErrNotFound)
}

func TestNameFilterFoldsUnicodeCase(t *testing.T) {
	gdb := testutil.DB(t)
	s := New(gdb)
	ctx := context.Background()
	author := testutil.SeedUser(t, gdb, "cook")
	testutil.SeedRecipe(t, gdb, author, "Борщ", nil)
	testutil.SeedRecipe(t, gdb, author, "борщ зелёный", nil)
	testutil.SeedRecipe(t, gdb, author, "Блины", nil)
	testutil.SeedRecipe(t, gdb, author, "Apple pie", nil)

	cases := []struct {
		prefix string
		want   []string
	}{
		{"бор", []string{"Борщ", "борщ зелёный"}},
		{"БОРЩ З", []string{"борщ зелёный"}},
		{"apple", []string{"Apple pie"}},
		{"щи", nil},
	}
	for _, tc := range cases {
		t.Run(tc.prefix, func(t *testing.T) {
			recipes, total, err := s.ListRecipes(ctx, RecipeFilter{NamePrefix: tc.prefix}, 0, 10)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tc.want)), total)
			var names []string
			for _, r := range recipes {
				names = append(names, r.Name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestNameFilterCombinesWithAuthor(t *testing.T) {
	gdb := testutil.DB(t)
	s := New(gdb)
	ctx := context.Background()
	cook := testutil.SeedUser(t, gdb, "cook")
	baker := testutil.SeedUser(t, gdb, "baker")
	testutil.SeedRecipe(t, gdb, cook, "Пирог", nil)
	mine := testutil.SeedRecipe(t, gdb, baker, "пирожки", nil)

	recipes, total, err := s.ListRecipes(ctx, RecipeFilter{NamePrefix: "ПИР", AuthorID: baker.ID}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recipes, 1)
	assert.Equal(t, mine.ID, recipes[0].ID)
}
