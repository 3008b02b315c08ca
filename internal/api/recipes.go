package api

import (
	"bytes"    // Document buffer
	"context"  // Service call signatures
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"foodgram/internal/domain"     // Domain models
	"foodgram/internal/middleware" // Request identity
	"foodgram/internal/render"     // Shopping list documents
	"foodgram/internal/service"    // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// RecipeRequest is the body of both create and partial update
type RecipeRequest struct {
	Ingredients []domain.IngredientAmount `json:"ingredients"`  // Ingredient ids with amounts
	Tags        []uint                    `json:"tags"`         // Tag ids
	Image       *string                   `json:"image"`        // Base64 image
	Name        *string                   `json:"name"`         // Recipe title
	Text        *string                   `json:"text"`         // Description
	CookingTime *int                      `json:"cooking_time"` // Minutes
}

func (r RecipeRequest) input() service.RecipeInput {
	in := service.RecipeInput{Ingredients: r.Ingredients, Tags: r.Tags}
	if r.Name != nil {
		in.Name = *r.Name
	}
	if r.Text != nil {
		in.Text = *r.Text
	}
	if r.Image != nil {
		in.Image = *r.Image
	}
	if r.CookingTime != nil {
		in.CookingTime = *r.CookingTime
	}
	return in
}

func (r RecipeRequest) patch() service.RecipePatch {
	return service.RecipePatch{
		Name:        r.Name,
		Text:        r.Text,
		Image:       r.Image,
		CookingTime: r.CookingTime,
		Ingredients: r.Ingredients,
		Tags:        r.Tags,
	}
}

// ShortLinkResponse carries the short URL of a recipe
type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}

// ListRecipesHandler returns a filtered page of recipes
func ListRecipesHandler(d Deps) gin.HandlerFunc {
	p := d.presenter()
	return func(c *gin.Context) {
		req := parsePage(c)
		q := service.RecipeQuery{
			Name:           c.Query("name"),
			Tags:           c.QueryArray("tags"),
			Favorited:      boolQuery(c, "is_favorited"),
			InShoppingCart: boolQuery(c, "is_in_shopping_cart"),
		}
		if author := intQuery(c, "author", 0); author > 0 {
			q.AuthorID = uint(author)
		}
		page, err := d.Service.ListRecipes(c.Request.Context(), middleware.ActorFrom(c), q, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pageResponse(c, d.PublicURL, req, page, p.recipe))
	}
}

// GetRecipeHandler returns one recipe
func GetRecipeHandler(d Deps) gin.HandlerFunc {
	p := d.presenter()
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		view, err := d.Service.GetRecipe(c.Request.Context(), middleware.ActorFrom(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p.recipe(*view))
	}
}

// CreateRecipeHandler publishes a recipe authored by the caller
func CreateRecipeHandler(d Deps) gin.HandlerFunc {
	p := d.presenter()
	return func(c *gin.Context) {
		var req RecipeRequest
		if !bindJSON(c, &req) {
			return
		}
		view, err := d.Service.CreateRecipe(c.Request.Context(), middleware.ActorFrom(c), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p.recipe(*view))
	}
}

// UpdateRecipeHandler applies a partial update
func UpdateRecipeHandler(d Deps) gin.HandlerFunc {
	p := d.presenter()
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req RecipeRequest
		if !bindJSON(c, &req) {
			return
		}
		view, err := d.Service.UpdateRecipe(c.Request.Context(), middleware.ActorFrom(c), id, req.patch())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p.recipe(*view))
	}
}

// DeleteRecipeHandler removes a recipe
func DeleteRecipeHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := d.Service.DeleteRecipe(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// AddFavoriteHandler marks a recipe as favorite
func AddFavoriteHandler(d Deps) gin.HandlerFunc {
	return addRecipeRelation(d, d.Service.AddFavorite)
}

// RemoveFavoriteHandler unmarks a favorite recipe
func RemoveFavoriteHandler(d Deps) gin.HandlerFunc {
	return removeRecipeRelation(d.Service.RemoveFavorite)
}

// AddToCartHandler puts a recipe into the shopping cart
func AddToCartHandler(d Deps) gin.HandlerFunc {
	return addRecipeRelation(d, d.Service.AddToCart)
}

// RemoveFromCartHandler takes a recipe out of the shopping cart
func RemoveFromCartHandler(d Deps) gin.HandlerFunc {
	return removeRecipeRelation(d.Service.RemoveFromCart)
}

func addRecipeRelation(d Deps, add func(context.Context, service.Actor, uint) (*domain.Recipe, error)) gin.HandlerFunc {
	p := d.presenter()
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		recipe, err := add(c.Request.Context(), middleware.ActorFrom(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p.recipeShort(*recipe))
	}
}

func removeRecipeRelation(remove func(context.Context, service.Actor, uint) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := remove(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// DownloadShoppingCartHandler exports the aggregated cart as PDF or PNG
func DownloadShoppingCartHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderer, err := render.ForFormat(c.Query("format"))
		if err != nil {
			respondError(c, domain.FieldError("format", err.Error()))
			return
		}
		doc, err := d.Service.ShoppingList(c.Request.Context(), middleware.ActorFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		var buf bytes.Buffer
		if err := renderer.Render(&buf, doc); err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=shopping_cart."+renderer.Extension())
		c.Data(http.StatusOK, renderer.ContentType(), buf.Bytes())
	}
}

// ShortLinkHandler returns the short URL of a recipe
func ShortLinkHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		link, err := d.Service.ShortLink(c.Request.Context(), d.PublicURL, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, ShortLinkResponse{ShortLink: link})
	}
}

// ResolveShortLinkHandler redirects a short link to the recipe page
func ResolveShortLinkHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		path, err := d.Service.ResolveShortLink(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Redirect(http.StatusFound, d.PublicURL+path)
	}
}

// pathID parses the :id path parameter; a malformed id is a 404
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": domain.ErrNotFound.Error()})
		return 0, false
	}
	return uint(id), true
}
