// Package validate holds the field and cross-field rules for recipe and user
// input. Every rule reports through *domain.ValidationError so list-shaped
// checks can report all problems at once.
package validate

import (
	"context"      // Request-scoped cancellation
	"fmt"          // String formatting
	"regexp"       // Pattern matching
	"strings"      // String helpers
	"unicode/utf8" // Rune counting

	"foodgram/internal/domain" // Domain models and error kinds

	"github.com/go-playground/validator/v10" // Struct validation
)

const (
	ReservedUsername  = "me"
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNameLength     = 150
	MaxRecipeName     = 256
	MaxSlugLength     = 32
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

	// standalone engine for single-value checks outside of request binding
	engine = validator.New()
)

// ExistsFunc reports whether a unique value is already taken in the store.
type ExistsFunc func(ctx context.Context, value string) (bool, error)

// Ingredients fails if the list is empty, an amount is not positive, or an
// ingredient id repeats. The accepted list is returned unchanged.
func Ingredients(items []domain.IngredientAmount) ([]domain.IngredientAmount, error) {
	verr := domain.NewValidationError()
	if len(items) == 0 {
		verr.Add("ingredients", "at least one ingredient is required")
		return nil, verr
	}
	seen := make(map[uint]struct{}, len(items))
	repeated := false
	for _, item := range items {
		if item.Amount <= 0 {
			verr.Add("ingredients", fmt.Sprintf("amount of ingredient %d must be greater than zero", item.ID))
		}
		if _, ok := seen[item.ID]; ok {
			repeated = true
		}
		seen[item.ID] = struct{}{}
	}
	if repeated {
		verr.Add("ingredients", "ingredients must not repeat")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return items, nil
}

// Tags fails if the list is empty or contains duplicates.
func Tags(ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, domain.FieldError("tags", "at least one tag is required")
	}
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return nil, domain.FieldError("tags", "tags must not repeat")
		}
		seen[id] = struct{}{}
	}
	return ids, nil
}

// CookingTime requires a positive number of minutes.
func CookingTime(minutes int) error {
	if minutes <= 0 {
		return domain.FieldError("cooking_time", "cooking time must be greater than zero")
	}
	return nil
}

// Slug checks the tag slug charset.
func Slug(s string) error {
	switch {
	case s == "":
		return domain.FieldError("slug", "this field may not be blank")
	case utf8.RuneCountInString(s) > MaxSlugLength:
		return domain.FieldError("slug", fmt.Sprintf("ensure this field has no more than %d characters", MaxSlugLength))
	case !slugPattern.MatchString(s):
		return domain.FieldError("slug", "slug may contain only letters, digits, \"_\" and \"-\"")
	}
	return nil
}

// IsValidUsername checks the charset and rejects the reserved name.
func IsValidUsername(s string) bool {
	return usernamePattern.MatchString(s) && s != ReservedUsername
}

// Username runs the format rules and then the uniqueness lookup.
func Username(ctx context.Context, s string, exists ExistsFunc) error {
	switch {
	case strings.TrimSpace(s) == "":
		return domain.FieldError("username", "this field may not be blank")
	case s == ReservedUsername:
		return domain.FieldError("username", fmt.Sprintf("username %q is not allowed", ReservedUsername))
	case !usernamePattern.MatchString(s):
		return domain.FieldError("username", "username contains invalid characters")
	case utf8.RuneCountInString(s) > MaxUsernameLength:
		return domain.FieldError("username", fmt.Sprintf("ensure this field has no more than %d characters", MaxUsernameLength))
	}
	taken, err := exists(ctx, s)
	if err != nil {
		return err
	}
	if taken {
		return domain.FieldError("username", "a user with that username already exists")
	}
	return nil
}

// Email runs the format rules and then the uniqueness lookup.
func Email(ctx context.Context, s string, exists ExistsFunc) error {
	switch {
	case strings.TrimSpace(s) == "":
		return domain.FieldError("email", "this field may not be blank")
	case utf8.RuneCountInString(s) > MaxEmailLength:
		return domain.FieldError("email", fmt.Sprintf("ensure this field has no more than %d characters", MaxEmailLength))
	case engine.Var(s, "email") != nil:
		return domain.FieldError("email", "enter a valid email address")
	}
	taken, err := exists(ctx, s)
	if err != nil {
		return err
	}
	if taken {
		return domain.FieldError("email", "a user with that email already exists")
	}
	return nil
}

// Required fails when s is blank or longer than max runes.
func Required(field, s string, max int) error {
	if strings.TrimSpace(s) == "" {
		return domain.FieldError(field, "this field may not be blank")
	}
	if max > 0 && utf8.RuneCountInString(s) > max {
		return domain.FieldError(field, fmt.Sprintf("ensure this field has no more than %d characters", max))
	}
	return nil
}

// Collect merges validation errors into one. The first non-validation error
// wins so store failures are never reported as bad input.
func Collect(errs ...error) error {
	verr := domain.NewValidationError()
	for _, err := range errs {
		if err == nil {
			continue
		}
		fe, ok := err.(*domain.ValidationError)
		if !ok {
			return err
		}
		verr.Merge(fe)
	}
	return verr.OrNil()
}
