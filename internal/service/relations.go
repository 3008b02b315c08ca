package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection

	"foodgram/internal/domain" // Domain models and error kinds
	"foodgram/internal/store"  // Database access

	"github.com/sirupsen/logrus" // Structured logging
)

// pairTable describes one (user, target) association table. Favorites,
// cart entries and follows share the toggle logic but not their tables.
type pairTable struct {
	name      string
	exists    func(*store.Store, context.Context, uint, uint) (bool, error)
	add       func(*store.Store, context.Context, uint, uint) error
	remove    func(*store.Store, context.Context, uint, uint) (bool, error)
	duplicate error
	absent    error
}

var (
	favorites = pairTable{
		name:      "favorite",
		exists:    (*store.Store).FavoriteExists,
		add:       (*store.Store).AddFavorite,
		remove:    (*store.Store).RemoveFavorite,
		duplicate: domain.NewError(domain.ErrConflict, "recipe is already in favorites"),
		absent:    domain.NewError(domain.ErrBadRequest, "recipe is not in favorites"),
	}
	shoppingCart = pairTable{
		name:      "shopping_cart",
		exists:    (*store.Store).CartExists,
		add:       (*store.Store).AddToCart,
		remove:    (*store.Store).RemoveFromCart,
		duplicate: domain.NewError(domain.ErrConflict, "recipe is already in the shopping cart"),
		absent:    domain.NewError(domain.ErrBadRequest, "recipe is not in the shopping cart"),
	}
	follows = pairTable{
		name:      "follow",
		exists:    (*store.Store).FollowExists,
		add:       (*store.Store).AddFollow,
		remove:    (*store.Store).RemoveFollow,
		duplicate: domain.NewError(domain.ErrBadRequest, "you are already subscribed to this user"),
		absent:    domain.NewError(domain.ErrBadRequest, "you are not subscribed to this user"),
	}
)

// addPair checks then inserts inside one transaction. The unique index is
// the real guard: a lost race surfaces as the same duplicate error.
func (s *Service) addPair(ctx context.Context, t pairTable, userID, targetID uint) error {
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		found, err := t.exists(tx, ctx, userID, targetID)
		if err != nil {
			return err
		}
		if found {
			return t.duplicate
		}
		return t.add(tx, ctx, userID, targetID)
	})
	if errors.Is(err, domain.ErrConflict) {
		return t.duplicate
	}
	if err == nil {
		logrus.WithFields(logrus.Fields{"table": t.name, "user_id": userID, "target_id": targetID}).Info("Relation added")
	}
	return err
}

func (s *Service) removePair(ctx context.Context, t pairTable, userID, targetID uint) error {
	removed, err := t.remove(s.store, ctx, userID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return t.absent
	}
	logrus.WithFields(logrus.Fields{"table": t.name, "user_id": userID, "target_id": targetID}).Info("Relation removed")
	return nil
}

// AddFavorite favorites a recipe and returns it.
func (s *Service) AddFavorite(ctx context.Context, actor Actor, recipeID uint) (*domain.Recipe, error) {
	return s.addRecipePair(ctx, favorites, actor, recipeID)
}

// RemoveFavorite drops a recipe from the actor's favorites.
func (s *Service) RemoveFavorite(ctx context.Context, actor Actor, recipeID uint) error {
	return s.removeRecipePair(ctx, favorites, actor, recipeID)
}

// AddToCart puts a recipe into the shopping cart and returns it.
func (s *Service) AddToCart(ctx context.Context, actor Actor, recipeID uint) (*domain.Recipe, error) {
	return s.addRecipePair(ctx, shoppingCart, actor, recipeID)
}

// RemoveFromCart drops a recipe from the shopping cart.
func (s *Service) RemoveFromCart(ctx context.Context, actor Actor, recipeID uint) error {
	return s.removeRecipePair(ctx, shoppingCart, actor, recipeID)
}

func (s *Service) addRecipePair(ctx context.Context, t pairTable, actor Actor, recipeID uint) (*domain.Recipe, error) {
	if err := actor.require(); err != nil {
		return nil, err
	}
	recipe, err := s.store.RecipeRow(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.addPair(ctx, t, actor.UserID, recipeID); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *Service) removeRecipePair(ctx context.Context, t pairTable, actor Actor, recipeID uint) error {
	if err := actor.require(); err != nil {
		return err
	}
	found, err := s.store.RecipeExists(ctx, recipeID)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return s.removePair(ctx, t, actor.UserID, recipeID)
}

// SubscriptionView is a followed author with a preview of their recipes.
type SubscriptionView struct {
	UserView
	Recipes      []domain.Recipe
	RecipesCount int64
}

// Follow subscribes the actor to authorID. Following yourself is always a
// bad request, whatever relations already exist.
func (s *Service) Follow(ctx context.Context, actor Actor, authorID uint, recipesLimit int) (*SubscriptionView, error) {
	if err := actor.require(); err != nil {
		return nil, err
	}
	author, err := s.store.UserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if actor.UserID == authorID {
		return nil, domain.ErrSelfFollow
	}
	if err := s.addPair(ctx, follows, actor.UserID, authorID); err != nil {
		return nil, err
	}
	return s.subscription(ctx, *author, recipesLimit)
}

// Unfollow cancels the actor's subscription to an author.
func (s *Service) Unfollow(ctx context.Context, actor Actor, authorID uint) error {
	if err := actor.require(); err != nil {
		return err
	}
	if _, err := s.store.UserByID(ctx, authorID); err != nil {
		return err
	}
	if actor.UserID == authorID {
		return domain.ErrSelfFollow
	}
	return s.removePair(ctx, follows, actor.UserID, authorID)
}

// Subscriptions pages through the authors the actor follows.
func (s *Service) Subscriptions(ctx context.Context, actor Actor, page PageRequest, recipesLimit int) (Page[SubscriptionView], error) {
	if err := actor.require(); err != nil {
		return Page[SubscriptionView]{}, err
	}
	offset, limit := page.bounds()
	authors, total, err := s.store.ListFollowing(ctx, actor.UserID, offset, limit)
	if err != nil {
		return Page[SubscriptionView]{}, err
	}
	items := make([]SubscriptionView, 0, len(authors))
	for _, author := range authors {
		sub, err := s.subscription(ctx, author, recipesLimit)
		if err != nil {
			return Page[SubscriptionView]{}, err
		}
		items = append(items, *sub)
	}
	return Page[SubscriptionView]{Items: items, Total: total}, nil
}

func (s *Service) subscription(ctx context.Context, author domain.User, recipesLimit int) (*SubscriptionView, error) {
	recipes, err := s.store.RecipesByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.store.CountRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	return &SubscriptionView{
		UserView:     UserView{User: author, IsSubscribed: true},
		Recipes:      recipes,
		RecipesCount: count,
	}, nil
}
