package domain

import "time"

// Tag is immutable reference data attached to recipes.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:32;not null" json:"name"`
	Slug string `gorm:"size:32;uniqueIndex;not null" json:"slug"`
}

// Ingredient is unique on (name, measurement unit).
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:128;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string `gorm:"size:64;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

// Recipe Model
type Recipe struct {
	ID          uint               `gorm:"primaryKey"`                                               // Primary key
	Name        string             `gorm:"size:256;not null"`                                        // Recipe title
	Text        string             `gorm:"type:text;not null"`                                       // Description
	AuthorID    uint               `gorm:"not null;index"`                                           // Foreign key to User
	Author      User               `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`            // Owning user
	Image       string             `gorm:"size:255"`                                                 // Image store key
	CreatedAt   time.Time          `gorm:"autoCreateTime"`                                           // Creation timestamp
	CookingTime int                `gorm:"not null;check:chk_recipes_cooking_time,cooking_time > 0"` // Minutes
	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE;"`
	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE;"`
}

// RecipeIngredient links a recipe to an ingredient with an amount.
type RecipeIngredient struct {
	ID           uint       `gorm:"primaryKey"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient;index"`
	Ingredient   Ingredient `gorm:"constraint:OnDelete:CASCADE;"`
	Amount       int        `gorm:"not null;check:chk_recipe_ingredients_amount,amount > 0"`
}

// RecipeTag is the join row behind Recipe.Tags.
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey"`
	TagID    uint `gorm:"primaryKey;index"`
}

// IngredientAmount is one requested ingredient entry of a recipe write.
type IngredientAmount struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}
