package store

import (
	"context" // Request-scoped cancellation

	"foodgram/internal/domain" // Domain models and error kinds

	"gorm.io/gorm/clause" // SQL clauses
)

// ListTags returns every tag ordered by id.
func (s *Store) ListTags(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	if err := s.conn(ctx).Order("id").Find(&tags).Error; err != nil {
		return nil, translate(err)
	}
	return tags, nil
}

// TagByID returns domain.ErrNotFound for an unknown id.
func (s *Store) TagByID(ctx context.Context, id uint) (*domain.Tag, error) {
	var t domain.Tag
	if err := s.conn(ctx).First(&t, id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// CreateTag inserts t.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	return translate(s.conn(ctx).Create(t).Error)
}

// MissingTagIDs returns the ids in ids that name no tag.
func (s *Store) MissingTagIDs(ctx context.Context, ids []uint) ([]uint, error) {
	return missingIDs[domain.Tag](ctx, s.db, ids)
}

// ListIngredients returns every ingredient ordered by id.
func (s *Store) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	var items []domain.Ingredient
	if err := s.conn(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

// IngredientByID returns domain.ErrNotFound for an unknown id.
func (s *Store) IngredientByID(ctx context.Context, id uint) (*domain.Ingredient, error) {
	var i domain.Ingredient
	if err := s.conn(ctx).First(&i, id).Error; err != nil {
		return nil, translate(err)
	}
	return &i, nil
}

// CreateIngredient inserts i.
func (s *Store) CreateIngredient(ctx context.Context, i *domain.Ingredient) error {
	return translate(s.conn(ctx).Create(i).Error)
}

// ImportIngredients inserts items in batches, skipping (name, unit) pairs that
// already exist. It returns the number of rows actually inserted.
func (s *Store) ImportIngredients(ctx context.Context, items []domain.Ingredient) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	res := s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(items, 500)
	return res.RowsAffected, translate(res.Error)
}

// MissingIngredientIDs returns the ids in ids that name no ingredient.
func (s *Store) MissingIngredientIDs(ctx context.Context, ids []uint) ([]uint, error) {
	return missingIDs[domain.Ingredient](ctx, s.db, ids)
}
