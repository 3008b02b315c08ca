package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection
	"strings" // String helpers

	"foodgram/internal/domain"   // Domain models and error kinds
	"foodgram/internal/validate" // Input validation

	"github.com/sirupsen/logrus" // Structured logging
)

const (
	tagsCacheKey        = "catalog:tags"
	ingredientsCacheKey = "catalog:ingredients"

	maxTagName        = 32
	maxIngredientName = 128
	maxUnitLength     = 64
)

// ListTags returns every tag, served from the cache when possible.
func (s *Service) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return cached(ctx, s, tagsCacheKey, s.store.ListTags)
}

// GetTag returns one tag by id.
func (s *Service) GetTag(ctx context.Context, id uint) (*domain.Tag, error) {
	return s.store.TagByID(ctx, id)
}

// CreateTag adds reference data; admins only.
func (s *Service) CreateTag(ctx context.Context, actor Actor, name, slug string) (*domain.Tag, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validate.Collect(validate.Required("name", name, maxTagName), validate.Slug(slug)); err != nil {
		return nil, err
	}
	tag := domain.Tag{Name: name, Slug: slug}
	if err := s.store.CreateTag(ctx, &tag); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.FieldError("slug", "tag with this slug already exists")
		}
		return nil, err
	}
	s.invalidate(ctx, tagsCacheKey)
	logrus.WithFields(logrus.Fields{"tag_id": tag.ID, "slug": tag.Slug}).Info("Tag created")
	return &tag, nil
}

// ListIngredients returns ingredients whose name starts with prefix,
// compared case-insensitively; an empty prefix returns all of them.
func (s *Service) ListIngredients(ctx context.Context, prefix string) ([]domain.Ingredient, error) {
	all, err := cached(ctx, s, ingredientsCacheKey, s.store.ListIngredients)
	if err != nil {
		return nil, err
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return all, nil
	}
	matched := []domain.Ingredient{}
	for _, it := range all {
		if strings.HasPrefix(strings.ToLower(it.Name), prefix) {
			matched = append(matched, it)
		}
	}
	return matched, nil
}

// GetIngredient returns one ingredient by id.
func (s *Service) GetIngredient(ctx context.Context, id uint) (*domain.Ingredient, error) {
	return s.store.IngredientByID(ctx, id)
}

// CreateIngredient adds reference data; admins only.
func (s *Service) CreateIngredient(ctx context.Context, actor Actor, name, unit string) (*domain.Ingredient, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validate.Collect(
		validate.Required("name", name, maxIngredientName),
		validate.Required("measurement_unit", unit, maxUnitLength),
	); err != nil {
		return nil, err
	}
	item := domain.Ingredient{Name: name, MeasurementUnit: unit}
	if err := s.store.CreateIngredient(ctx, &item); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.FieldError("name", "ingredient with this name and measurement unit already exists")
		}
		return nil, err
	}
	s.invalidate(ctx, ingredientsCacheKey)
	logrus.WithFields(logrus.Fields{"ingredient_id": item.ID, "name": item.Name}).Info("Ingredient created")
	return &item, nil
}

// ImportIngredients bulk loads reference data, skipping known pairs and
// rows with a blank name.
func (s *Service) ImportIngredients(ctx context.Context, items []domain.Ingredient) (int64, error) {
	clean := make([]domain.Ingredient, 0, len(items))
	for _, it := range items {
		it.ID = 0
		it.Name = strings.TrimSpace(it.Name)
		it.MeasurementUnit = strings.TrimSpace(it.MeasurementUnit)
		if it.Name == "" {
			continue
		}
		clean = append(clean, it)
	}
	n, err := s.store.ImportIngredients(ctx, clean)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, ingredientsCacheKey)
	logrus.WithFields(logrus.Fields{"submitted": len(items), "inserted": n}).Info("Ingredients imported")
	return n, nil
}
