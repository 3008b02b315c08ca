package api

import (
	"strings" // String manipulation

	"foodgram/internal/domain"  // Domain models
	"foodgram/internal/service" // Views

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserResponse is the public user representation
type UserResponse struct {
	ID           uint    `json:"id"`            // User ID
	Username     string  `json:"username"`      // Username
	Email        string  `json:"email"`         // E-mail
	IsSubscribed bool    `json:"is_subscribed"` // Viewer follows this user
	FirstName    string  `json:"first_name"`    // First name
	LastName     string  `json:"last_name"`     // Last name
	Avatar       *string `json:"avatar"`        // Avatar URL, null when unset
}

// RegisteredUserResponse is returned once on sign-up
type RegisteredUserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// IngredientLineResponse is one ingredient of a recipe with its amount
type IngredientLineResponse struct {
	ID              uint   `json:"id"`               // Ingredient ID
	Name            string `json:"name"`             // Ingredient name
	MeasurementUnit string `json:"measurement_unit"` // Unit
	Amount          int    `json:"amount"`           // Amount in the recipe
}

// RecipeResponse is the full recipe representation
type RecipeResponse struct {
	ID               uint                     `json:"id"`
	Tags             []domain.Tag             `json:"tags"`
	Author           UserResponse             `json:"author"`
	Ingredients      []IngredientLineResponse `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
	Name             string                   `json:"name"`
	Image            string                   `json:"image"`
	Text             string                   `json:"text"`
	CookingTime      int                      `json:"cooking_time"`
}

// RecipeShortResponse is used in favorites, cart and subscriptions
type RecipeShortResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionResponse is a followed author with recipe previews
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

// PageResponse is the paginated envelope
type PageResponse[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// presenter turns service views into responses with absolute media URLs
type presenter struct {
	svc       *service.Service
	publicURL string
}

func (p presenter) mediaURL(key string) string {
	url := p.svc.ImageURL(key)
	if strings.HasPrefix(url, "/") {
		return p.publicURL + url
	}
	return url
}

func (p presenter) user(v service.UserView) UserResponse {
	resp := UserResponse{
		ID:           v.User.ID,
		Username:     v.User.Username,
		Email:        v.User.Email,
		IsSubscribed: v.IsSubscribed,
		FirstName:    v.User.FirstName,
		LastName:     v.User.LastName,
	}
	if v.User.Avatar != "" {
		url := p.mediaURL(v.User.Avatar)
		resp.Avatar = &url
	}
	return resp
}

func (p presenter) recipe(v service.RecipeView) RecipeResponse {
	r := v.Recipe
	lines := make([]IngredientLineResponse, len(r.Ingredients))
	for i, ri := range r.Ingredients {
		lines[i] = IngredientLineResponse{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		}
	}
	tags := r.Tags
	if tags == nil {
		tags = []domain.Tag{}
	}
	return RecipeResponse{
		ID:               r.ID,
		Tags:             tags,
		Author:           p.user(service.UserView{User: r.Author, IsSubscribed: v.AuthorSubscribed}),
		Ingredients:      lines,
		IsFavorited:      v.IsFavorited,
		IsInShoppingCart: v.IsInShoppingCart,
		Name:             r.Name,
		Image:            p.mediaURL(r.Image),
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

func (p presenter) recipeShort(r domain.Recipe) RecipeShortResponse {
	return RecipeShortResponse{ID: r.ID, Name: r.Name, Image: p.mediaURL(r.Image), CookingTime: r.CookingTime}
}

func (p presenter) subscription(v service.SubscriptionView) SubscriptionResponse {
	recipes := make([]RecipeShortResponse, len(v.Recipes))
	for i, r := range v.Recipes {
		recipes[i] = p.recipeShort(r)
	}
	return SubscriptionResponse{UserResponse: p.user(v.UserView), Recipes: recipes, RecipesCount: v.RecipesCount}
}

// mapItems converts every item of a service page
func mapItems[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i, it := range items {
		out[i] = fn(it)
	}
	return out
}

// pageResponse wraps a page with links to its neighbours
func pageResponse[T, R any](c *gin.Context, publicURL string, req service.PageRequest, page service.Page[T], fn func(T) R) PageResponse[R] {
	return PageResponse[R]{
		Count:    page.Total,
		Next:     pageLink(c, publicURL, req, page.Total, +1),
		Previous: pageLink(c, publicURL, req, page.Total, -1),
		Results:  mapItems(page.Items, fn),
	}
}
