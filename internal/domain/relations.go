package domain

import (
	"time" // Durations

	"gorm.io/gorm" // ORM
)

// Favorite marks a recipe as liked by a user.
type Favorite struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe;index"`
	User      User      `gorm:"constraint:OnDelete:CASCADE;"`
	Recipe    Recipe    `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ShoppingCart places a recipe into a user's shopping list.
type ShoppingCart struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe;index"`
	User      User      `gorm:"constraint:OnDelete:CASCADE;"`
	Recipe    Recipe    `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Follow subscribes User to the recipes of Author.
type Follow struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follow_user_author"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_follow_user_author;index"`
	User      User      `gorm:"constraint:OnDelete:CASCADE;"`
	Author    User      `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// BeforeCreate rejects self-follow rows regardless of the caller.
func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.UserID == f.AuthorID {
		return ErrSelfFollow
	}
	return nil
}
