package testutil

import (
	"testing"

	"foodgram/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Password is the plain password of every seeded user.
const Password = "s3cret-pass"

var passwordHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

func SeedUser(tb testing.TB, tx *gorm.DB, username string) *domain.User {
	tb.Helper()
	u := &domain.User{
		Email:     username + "@example.com",
		Username:  username,
		Password:  passwordHash,
		FirstName: "First",
		LastName:  "Last",
	}
	if err := tx.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedAdmin(tb testing.TB, tx *gorm.DB, username string) *domain.User {
	tb.Helper()
	u := SeedUser(tb, tx, username)
	if err := tx.Model(u).Update("is_admin", true).Error; err != nil {
		tb.Fatalf("seed admin: %v", err)
	}
	u.IsAdmin = true
	return u
}

func SeedTag(tb testing.TB, tx *gorm.DB, slug string) *domain.Tag {
	tb.Helper()
	t := &domain.Tag{Name: slug, Slug: slug}
	if err := tx.Create(t).Error; err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	return t
}

func SeedIngredient(tb testing.TB, tx *gorm.DB, name, unit string) *domain.Ingredient {
	tb.Helper()
	i := &domain.Ingredient{Name: name, MeasurementUnit: unit}
	if err := tx.Create(i).Error; err != nil {
		tb.Fatalf("seed ingredient: %v", err)
	}
	return i
}

// SeedRecipe writes a recipe with the given ingredient amounts and tags
// directly, bypassing validation.
func SeedRecipe(tb testing.TB, tx *gorm.DB, author *domain.User, name string, items []domain.IngredientAmount, tags ...*domain.Tag) *domain.Recipe {
	tb.Helper()
	r := &domain.Recipe{Name: name, Text: "text", AuthorID: author.ID, Image: "recipes/images/seed.png", CookingTime: 10}
	if err := tx.Omit(clause.Associations).Create(r).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	for _, it := range items {
		row := domain.RecipeIngredient{RecipeID: r.ID, IngredientID: it.ID, Amount: it.Amount}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			tb.Fatalf("seed recipe ingredient: %v", err)
		}
	}
	for _, t := range tags {
		if err := tx.Create(&domain.RecipeTag{RecipeID: r.ID, TagID: t.ID}).Error; err != nil {
			tb.Fatalf("seed recipe tag: %v", err)
		}
	}
	return r
}

// SeedCart puts recipes into the user's shopping cart in order.
func SeedCart(tb testing.TB, tx *gorm.DB, user *domain.User, recipes ...*domain.Recipe) {
	tb.Helper()
	for _, r := range recipes {
		row := domain.ShoppingCart{UserID: user.ID, RecipeID: r.ID}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			tb.Fatalf("seed cart: %v", err)
		}
	}
}
