package store

import (
	"context" // Request-scoped cancellation
	"strings" // String helpers

	"foodgram/internal/domain" // Domain models and error kinds

	"gorm.io/gorm"        // ORM
	"gorm.io/gorm/clause" // SQL clauses
)

// RecipeFilter narrows ListRecipes. Zero values disable a condition.
type RecipeFilter struct {
	NamePrefix  string
	TagSlugs    []string
	AuthorID    uint
	FavoritedBy uint
	InCartOf    uint
}

// CreateRecipe inserts the recipe row only. Tags and ingredients are written separately.
func (s *Store) CreateRecipe(ctx context.Context, r *domain.Recipe) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(r).Error)
}

// UpdateRecipeFields writes the scalar columns of r.
func (s *Store) UpdateRecipeFields(ctx context.Context, r *domain.Recipe) error {
	res := s.conn(ctx).Model(&domain.Recipe{ID: r.ID}).
		Select("name", "text", "image", "cooking_time").
		Updates(map[string]any{
			"name":         r.Name,
			"text":         r.Text,
			"image":        r.Image,
			"cooking_time": r.CookingTime,
		})
	return translate(res.Error)
}

// AddRecipeIngredients inserts one association row per entry.
func (s *Store) AddRecipeIngredients(ctx context.Context, recipeID uint, items []domain.IngredientAmount) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]domain.RecipeIngredient, 0, len(items))
	for _, it := range items {
		rows = append(rows, domain.RecipeIngredient{RecipeID: recipeID, IngredientID: it.ID, Amount: it.Amount})
	}
	return translate(s.conn(ctx).Omit(clause.Associations).Create(&rows).Error)
}

// ClearRecipeIngredients removes every ingredient association of the recipe.
func (s *Store) ClearRecipeIngredients(ctx context.Context, recipeID uint) error {
	_, err := deleteWhere[domain.RecipeIngredient](ctx, s.db, "recipe_id = ?", recipeID)
	return err
}

// ReplaceRecipeTags makes the tag set of the recipe exactly tagIDs.
func (s *Store) ReplaceRecipeTags(ctx context.Context, recipeID uint, tagIDs []uint) error {
	if _, err := deleteWhere[domain.RecipeTag](ctx, s.db, "recipe_id = ?", recipeID); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]domain.RecipeTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		rows = append(rows, domain.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	return translate(s.conn(ctx).Create(&rows).Error)
}

// DeleteRecipe returns domain.ErrNotFound when no row was removed.
func (s *Store) DeleteRecipe(ctx context.Context, id uint) error {
	n, err := deleteWhere[domain.Recipe](ctx, s.db, "id = ?", id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecipeByID loads a recipe with its author, tags and ingredient rows.
func (s *Store) RecipeByID(ctx context.Context, id uint) (*domain.Recipe, error) {
	var r domain.Recipe
	if err := s.withRecipeDetails(s.conn(ctx)).First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// RecipeRow loads the recipe's own columns without associations.
func (s *Store) RecipeRow(ctx context.Context, id uint) (*domain.Recipe, error) {
	var r domain.Recipe
	if err := s.conn(ctx).First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// RecipeExists reports whether a recipe with id exists.
func (s *Store) RecipeExists(ctx context.Context, id uint) (bool, error) {
	return exists[domain.Recipe](ctx, s.db, "id = ?", id)
}

// ListRecipes returns one page of recipes ordered by id and the total count.
func (s *Store) ListRecipes(ctx context.Context, f RecipeFilter, offset, limit int) ([]domain.Recipe, int64, error) {
	var nameIDs []uint
	if f.NamePrefix != "" && s.db.Dialector.Name() == "sqlite" {
		ids, err := s.recipeIDsByNamePrefix(ctx, f.NamePrefix)
		if err != nil {
			return nil, 0, err
		}
		nameIDs = ids
	}
	var total int64
	if err := s.conn(ctx).Model(&domain.Recipe{}).Scopes(s.recipeFilter(f, nameIDs)).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var recipes []domain.Recipe
	err := s.withRecipeDetails(s.conn(ctx)).
		Scopes(s.recipeFilter(f, nameIDs)).
		Order("recipes.id").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return recipes, total, nil
}

// RecipesByAuthor returns up to limit recipes of the author, all if limit <= 0.
func (s *Store) RecipesByAuthor(ctx context.Context, authorID uint, limit int) ([]domain.Recipe, error) {
	q := s.conn(ctx).Where("author_id = ?", authorID).Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recipes []domain.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, translate(err)
	}
	return recipes, nil
}

// CountRecipesByAuthor counts the author's recipes.
func (s *Store) CountRecipesByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&domain.Recipe{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, translate(err)
}

func (s *Store) withRecipeDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id") }).
		Preload("Ingredients.Ingredient")
}

// recipeIDsByNamePrefix folds case in Go. SQLite's LOWER only folds ASCII,
// so a LIKE filter there would miss "Борщ" for the prefix "бор".
func (s *Store) recipeIDsByNamePrefix(ctx context.Context, prefix string) ([]uint, error) {
	var rows []struct {
		ID   uint
		Name string
	}
	if err := s.conn(ctx).Model(&domain.Recipe{}).Select("id", "name").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	prefix = strings.ToLower(prefix)
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		if strings.HasPrefix(strings.ToLower(r.Name), prefix) {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

// recipeFilter applies f. A non-nil nameIDs replaces the SQL name match.
func (s *Store) recipeFilter(f RecipeFilter, nameIDs []uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case f.NamePrefix == "":
		case nameIDs != nil:
			db = db.Where("recipes.id IN ?", nameIDs)
		default:
			db = db.Where("LOWER(recipes.name) LIKE ? ESCAPE '!'", likePrefix(strings.ToLower(f.NamePrefix)))
		}
		if f.AuthorID != 0 {
			db = db.Where("recipes.author_id = ?", f.AuthorID)
		}
		if len(f.TagSlugs) > 0 {
			sub := s.db.Model(&domain.RecipeTag{}).
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", f.TagSlugs)
			db = db.Where("recipes.id IN (?)", sub)
		}
		if f.FavoritedBy != 0 {
			sub := s.db.Model(&domain.Favorite{}).Select("recipe_id").Where("user_id = ?", f.FavoritedBy)
			db = db.Where("recipes.id IN (?)", sub)
		}
		if f.InCartOf != 0 {
			sub := s.db.Model(&domain.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", f.InCartOf)
			db = db.Where("recipes.id IN (?)", sub)
		}
		return db
	}
}
