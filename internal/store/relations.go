package store

import (
	"context" // Request-scoped cancellation

	"foodgram/internal/domain" // Domain models and error kinds

	"gorm.io/gorm"        // ORM
	"gorm.io/gorm/clause" // SQL clauses
)

// Favorite and ShoppingCart are separate tables with their own unique index;
// they only share these generic helpers.

// FavoriteExists reports whether the user favorited the recipe.
func (s *Store) FavoriteExists(ctx context.Context, userID, recipeID uint) (bool, error) {
	return exists[domain.Favorite](ctx, s.db, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

// AddFavorite inserts the pair. A duplicate surfaces as domain.ErrConflict.
func (s *Store) AddFavorite(ctx context.Context, userID, recipeID uint) error {
	row := domain.Favorite{UserID: userID, RecipeID: recipeID}
	return translate(s.conn(ctx).Omit(clause.Associations).Create(&row).Error)
}

// RemoveFavorite deletes the pair and reports whether it existed.
func (s *Store) RemoveFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	n, err := deleteWhere[domain.Favorite](ctx, s.db, "user_id = ? AND recipe_id = ?", userID, recipeID)
	return n > 0, err
}

// CartExists reports whether the recipe is in the user's cart.
func (s *Store) CartExists(ctx context.Context, userID, recipeID uint) (bool, error) {
	return exists[domain.ShoppingCart](ctx, s.db, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

// AddToCart inserts a cart row.
func (s *Store) AddToCart(ctx context.Context, userID, recipeID uint) error {
	row := domain.ShoppingCart{UserID: userID, RecipeID: recipeID}
	return translate(s.conn(ctx).Omit(clause.Associations).Create(&row).Error)
}

// RemoveFromCart reports whether a row was deleted.
func (s *Store) RemoveFromCart(ctx context.Context, userID, recipeID uint) (bool, error) {
	n, err := deleteWhere[domain.ShoppingCart](ctx, s.db, "user_id = ? AND recipe_id = ?", userID, recipeID)
	return n > 0, err
}

// CartWithIngredients loads the user's cart rows in insertion order with each
// recipe's ingredient rows and ingredients.
func (s *Store) CartWithIngredients(ctx context.Context, userID uint) ([]domain.ShoppingCart, error) {
	var rows []domain.ShoppingCart
	err := s.conn(ctx).
		Preload("Recipe").
		Preload("Recipe.Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id") }).
		Preload("Recipe.Ingredients.Ingredient").
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// FollowExists reports whether userID follows authorID.
func (s *Store) FollowExists(ctx context.Context, userID, authorID uint) (bool, error) {
	return exists[domain.Follow](ctx, s.db, "user_id = ? AND author_id = ?", userID, authorID)
}

// AddFollow inserts a subscription row.
func (s *Store) AddFollow(ctx context.Context, userID, authorID uint) error {
	row := domain.Follow{UserID: userID, AuthorID: authorID}
	// Follow.BeforeCreate rejects self-follow with domain.ErrSelfFollow.
	return translate(s.conn(ctx).Omit(clause.Associations).Create(&row).Error)
}

// RemoveFollow reports whether a row was deleted.
func (s *Store) RemoveFollow(ctx context.Context, userID, authorID uint) (bool, error) {
	n, err := deleteWhere[domain.Follow](ctx, s.db, "user_id = ? AND author_id = ?", userID, authorID)
	return n > 0, err
}

// ListFollowing returns one page of the authors userID follows, ordered by
// follow id, and the total count.
func (s *Store) ListFollowing(ctx context.Context, userID uint, offset, limit int) ([]domain.User, int64, error) {
	var total int64
	if err := s.conn(ctx).Model(&domain.Follow{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var follows []domain.Follow
	err := s.conn(ctx).Preload("Author").
		Where("user_id = ?", userID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&follows).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	authors := make([]domain.User, 0, len(follows))
	for _, f := range follows {
		authors = append(authors, f.Author)
	}
	return authors, total, nil
}

// FavoritedAmong returns which of recipeIDs the user has favorited.
func (s *Store) FavoritedAmong(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	return pluckSet[domain.Favorite](ctx, s.db, "recipe_id", "user_id = ? AND recipe_id IN ?", userID, recipeIDs)
}

// InCartAmong returns which of recipeIDs are in the user's cart.
func (s *Store) InCartAmong(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	return pluckSet[domain.ShoppingCart](ctx, s.db, "recipe_id", "user_id = ? AND recipe_id IN ?", userID, recipeIDs)
}

// FollowingAmong returns which of authorIDs the user follows.
func (s *Store) FollowingAmong(ctx context.Context, userID uint, authorIDs []uint) (map[uint]bool, error) {
	return pluckSet[domain.Follow](ctx, s.db, "author_id", "user_id = ? AND author_id IN ?", userID, authorIDs)
}

func pluckSet[T any](ctx context.Context, db *gorm.DB, column, query string, userID uint, ids []uint) (map[uint]bool, error) {
	set := map[uint]bool{}
	if userID == 0 || len(ids) == 0 {
		return set, nil
	}
	var found []uint
	if err := db.WithContext(ctx).Model(new(T)).Where(query, userID, ids).Pluck(column, &found).Error; err != nil {
		return nil, translate(err)
	}
	for _, id := range found {
		set[id] = true
	}
	return set, nil
}
