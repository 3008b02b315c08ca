package service

import (
	"context" // Request-scoped cancellation
	"fmt"     // String formatting
	"strconv" // Number parsing

	"foodgram/internal/domain"   // Domain models and error kinds
	"foodgram/internal/store"    // Database access
	"foodgram/internal/validate" // Input validation

	"github.com/sirupsen/logrus" // Structured logging
)

const recipeImagePrefix = "recipes/images"

// RecipeInput is a full recipe write.
type RecipeInput struct {
	Name        string
	Text        string
	Image       string // base64 payload
	CookingTime int
	Ingredients []domain.IngredientAmount
	Tags        []uint
}

// RecipePatch is a partial update. Nil scalars keep their stored value;
// Ingredients and Tags are always required and replace the prior sets.
type RecipePatch struct {
	Name        *string
	Text        *string
	Image       *string
	CookingTime *int
	Ingredients []domain.IngredientAmount
	Tags        []uint
}

func (p RecipePatch) validate() ([]domain.IngredientAmount, []uint, error) {
	ingredients, ingErr := validate.Ingredients(p.Ingredients)
	tags, tagErr := validate.Tags(p.Tags)
	errs := []error{ingErr, tagErr}
	if p.Name != nil {
		errs = append(errs, validate.Required("name", *p.Name, validate.MaxRecipeName))
	}
	if p.Text != nil {
		errs = append(errs, validate.Required("text", *p.Text, 0))
	}
	if p.CookingTime != nil {
		errs = append(errs, validate.CookingTime(*p.CookingTime))
	}
	if p.Image != nil {
		errs = append(errs, validate.Required("image", *p.Image, 0))
	}
	return ingredients, tags, validate.Collect(errs...)
}

// apply copies the supplied scalars onto r field by field.
func (p RecipePatch) apply(r *domain.Recipe, imageKey string) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Text != nil {
		r.Text = *p.Text
	}
	if p.CookingTime != nil {
		r.CookingTime = *p.CookingTime
	}
	if imageKey != "" {
		r.Image = imageKey
	}
}

// RecipeView is a recipe as seen by one actor.
type RecipeView struct {
	Recipe           domain.Recipe
	IsFavorited      bool
	IsInShoppingCart bool
	AuthorSubscribed bool
}

// RecipeQuery mirrors the list filters. Favorited and InShoppingCart refer
// to the requesting actor and match nothing for anonymous visitors.
type RecipeQuery struct {
	Name           string
	Tags           []string
	AuthorID       uint
	Favorited      bool
	InShoppingCart bool
}

// CreateRecipe validates input and persists the recipe with all of its
// associations in one transaction.
func (s *Service) CreateRecipe(ctx context.Context, actor Actor, in RecipeInput) (*RecipeView, error) {
	if err := actor.require(); err != nil {
		return nil, err
	}
	ingredients, ingErr := validate.Ingredients(in.Ingredients)
	tags, tagErr := validate.Tags(in.Tags)
	if err := validate.Collect(
		ingErr,
		tagErr,
		validate.Required("name", in.Name, validate.MaxRecipeName),
		validate.Required("text", in.Text, 0),
		validate.Required("image", in.Image, 0),
		validate.CookingTime(in.CookingTime),
	); err != nil {
		return nil, err
	}

	key, err := s.uploadImage(ctx, recipeImagePrefix, "image", in.Image)
	if err != nil {
		return nil, err
	}
	recipe := domain.Recipe{
		Name:        in.Name,
		Text:        in.Text,
		AuthorID:    actor.UserID,
		Image:       key,
		CookingTime: in.CookingTime,
	}
	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := checkReferences(ctx, tx, ingredients, tags); err != nil {
			return err
		}
		if err := tx.CreateRecipe(ctx, &recipe); err != nil {
			return err
		}
		return writeAssociations(ctx, tx, recipe.ID, ingredients, tags)
	})
	if err != nil {
		s.discardImage(ctx, key)
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"recipe_id": recipe.ID, "author_id": actor.UserID}).Info("Recipe created")
	return s.GetRecipe(ctx, actor, recipe.ID)
}

// UpdateRecipe applies patch and replaces the ingredient and tag sets in one
// transaction. Only the author or an admin may update.
func (s *Service) UpdateRecipe(ctx context.Context, actor Actor, id uint, patch RecipePatch) (*RecipeView, error) {
	current, err := s.store.RecipeRow(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanModifyRecipe(actor, current); err != nil {
		return nil, err
	}
	ingredients, tags, err := patch.validate()
	if err != nil {
		return nil, err
	}

	var newKey string
	if patch.Image != nil {
		if newKey, err = s.uploadImage(ctx, recipeImagePrefix, "image", *patch.Image); err != nil {
			return nil, err
		}
	}
	var oldKey string
	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		row, err := tx.RecipeRow(ctx, id)
		if err != nil {
			return err
		}
		oldKey = row.Image
		patch.apply(row, newKey)
		if err := checkReferences(ctx, tx, ingredients, tags); err != nil {
			return err
		}
		if err := tx.UpdateRecipeFields(ctx, row); err != nil {
			return err
		}
		if err := tx.ClearRecipeIngredients(ctx, id); err != nil {
			return err
		}
		return writeAssociations(ctx, tx, id, ingredients, tags)
	})
	if err != nil {
		s.discardImage(ctx, newKey)
		return nil, err
	}
	if newKey != "" && oldKey != newKey {
		s.discardImage(ctx, oldKey)
	}
	logrus.WithFields(logrus.Fields{"recipe_id": id, "user_id": actor.UserID}).Info("Recipe updated")
	return s.GetRecipe(ctx, actor, id)
}

// DeleteRecipe removes the recipe; its association rows cascade.
func (s *Service) DeleteRecipe(ctx context.Context, actor Actor, id uint) error {
	recipe, err := s.store.RecipeRow(ctx, id)
	if err != nil {
		return err
	}
	if err := CanModifyRecipe(actor, recipe); err != nil {
		return err
	}
	if err := s.store.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	s.discardImage(ctx, recipe.Image)
	logrus.WithFields(logrus.Fields{"recipe_id": id, "user_id": actor.UserID}).Info("Recipe deleted")
	return nil
}

// GetRecipe returns one recipe annotated for actor.
func (s *Service) GetRecipe(ctx context.Context, actor Actor, id uint) (*RecipeView, error) {
	recipe, err := s.store.RecipeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.annotateRecipes(ctx, actor, []domain.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListRecipes returns one page of recipes matching q, annotated for actor.
func (s *Service) ListRecipes(ctx context.Context, actor Actor, q RecipeQuery, page PageRequest) (Page[RecipeView], error) {
	if (q.Favorited || q.InShoppingCart) && !actor.Authenticated() {
		return Page[RecipeView]{Items: []RecipeView{}}, nil
	}
	filter := store.RecipeFilter{NamePrefix: q.Name, TagSlugs: q.Tags, AuthorID: q.AuthorID}
	if q.Favorited {
		filter.FavoritedBy = actor.UserID
	}
	if q.InShoppingCart {
		filter.InCartOf = actor.UserID
	}
	offset, limit := page.bounds()
	recipes, total, err := s.store.ListRecipes(ctx, filter, offset, limit)
	if err != nil {
		return Page[RecipeView]{}, err
	}
	views, err := s.annotateRecipes(ctx, actor, recipes)
	if err != nil {
		return Page[RecipeView]{}, err
	}
	return Page[RecipeView]{Items: views, Total: total}, nil
}

// ShortLink returns the short URL of an existing recipe below baseURL.
func (s *Service) ShortLink(ctx context.Context, baseURL string, id uint) (string, error) {
	found, err := s.store.RecipeExists(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return "", domain.ErrNotFound
	}
	return baseURL + "/s/" + strconv.FormatUint(uint64(id), 10) + "/", nil
}

// ResolveShortLink returns the frontend path of the recipe behind a short
// link id.
func (s *Service) ResolveShortLink(ctx context.Context, id uint) (string, error) {
	found, err := s.store.RecipeExists(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return "", domain.ErrNotFound
	}
	return "/recipes/" + strconv.FormatUint(uint64(id), 10) + "/", nil
}

// annotateRecipes adds the actor's favorite, cart and follow state.
func (s *Service) annotateRecipes(ctx context.Context, actor Actor, recipes []domain.Recipe) ([]RecipeView, error) {
	views := make([]RecipeView, len(recipes))
	for i, r := range recipes {
		views[i].Recipe = r
	}
	if !actor.Authenticated() || len(recipes) == 0 {
		return views, nil
	}
	recipeIDs := make([]uint, len(recipes))
	authorIDs := make([]uint, len(recipes))
	for i, r := range recipes {
		recipeIDs[i] = r.ID
		authorIDs[i] = r.AuthorID
	}
	favorited, err := s.store.FavoritedAmong(ctx, actor.UserID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := s.store.InCartAmong(ctx, actor.UserID, recipeIDs)
	if err != nil {
		return nil, err
	}
	following, err := s.store.FollowingAmong(ctx, actor.UserID, authorIDs)
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].IsFavorited = favorited[recipeIDs[i]]
		views[i].IsInShoppingCart = inCart[recipeIDs[i]]
		views[i].AuthorSubscribed = following[authorIDs[i]]
	}
	return views, nil
}

// checkReferences reports unknown ingredient and tag ids as validation
// errors on their fields.
func checkReferences(ctx context.Context, tx *store.Store, ingredients []domain.IngredientAmount, tags []uint) error {
	ids := make([]uint, len(ingredients))
	for i, it := range ingredients {
		ids[i] = it.ID
	}
	missingIngredients, err := tx.MissingIngredientIDs(ctx, ids)
	if err != nil {
		return err
	}
	missingTags, err := tx.MissingTagIDs(ctx, tags)
	if err != nil {
		return err
	}
	verr := domain.NewValidationError()
	for _, id := range missingIngredients {
		verr.Add("ingredients", fmt.Sprintf("ingredient %d does not exist", id))
	}
	for _, id := range missingTags {
		verr.Add("tags", fmt.Sprintf("tag %d does not exist", id))
	}
	return verr.OrNil()
}

// writeAssociations inserts one row per ingredient and sets the tag set.
func writeAssociations(ctx context.Context, tx *store.Store, recipeID uint, ingredients []domain.IngredientAmount, tags []uint) error {
	if err := tx.AddRecipeIngredients(ctx, recipeID, ingredients); err != nil {
		return err
	}
	return tx.ReplaceRecipeTags(ctx, recipeID, tags)
}
