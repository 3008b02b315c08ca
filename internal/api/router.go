package api

import (
	"foodgram/internal/middleware" // Auth, CORS and logging middleware
	"foodgram/internal/service"    // Business operations
	"foodgram/internal/storage"    // Upload limits

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps are the collaborators shared by every handler
type Deps struct {
	Service     *service.Service // Business operations
	PublicURL   string           // Absolute origin used for links and media
	MediaDir    string           // Local image directory, served when set
	MediaURL    string           // Route prefix of served images
	CORSOrigins []string         // Allowed origins
	MaxBodySize int64            // Request body limit in bytes, DefaultMaxBodySize when zero
}

// DefaultMaxBodySize fits one maximal base64 image plus the rest of a recipe
const DefaultMaxBodySize = storage.MaxPayloadLen + 1<<20

func (d Deps) presenter() presenter {
	return presenter{svc: d.Service, publicURL: d.PublicURL}
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	if d.MaxBodySize <= 0 {
		d.MaxBodySize = DefaultMaxBodySize
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(d.CORSOrigins), middleware.BodyLimit(d.MaxBodySize))
	r.RedirectTrailingSlash = true

	if d.MediaDir != "" {
		r.Static(d.MediaURL, d.MediaDir) // Local image store
	}
	r.GET("/s/:id", ResolveShortLinkHandler(d)) // Short link redirect

	api := r.Group("/api")
	api.Use(middleware.Authenticate(d.Service))
	auth := api.Group("", middleware.RequireAuth())

	// Auth routes
	api.POST("/auth/token/login", LoginHandler(d))
	auth.POST("/auth/token/logout", LogoutHandler(d))

	// User routes
	api.GET("/users", ListUsersHandler(d))
	api.POST("/users", RegisterHandler(d))
	auth.GET("/users/me", MeHandler(d))
	auth.PUT("/users/me/avatar", SetAvatarHandler(d))
	auth.DELETE("/users/me/avatar", DeleteAvatarHandler(d))
	auth.POST("/users/set_password", SetPasswordHandler(d))
	auth.GET("/users/subscriptions", SubscriptionsHandler(d))
	api.GET("/users/:id", GetUserHandler(d))
	auth.POST("/users/:id/subscribe", SubscribeHandler(d))
	auth.DELETE("/users/:id/subscribe", UnsubscribeHandler(d))

	// Reference data
	api.GET("/tags", ListTagsHandler(d))
	api.GET("/tags/:id", GetTagHandler(d))
	api.GET("/ingredients", ListIngredientsHandler(d))
	api.GET("/ingredients/:id", GetIngredientHandler(d))

	// Admin routes (protected, admin only)
	admin := api.Group("", middleware.AdminOnlyMiddleware())
	admin.POST("/tags", CreateTagHandler(d))
	admin.POST("/ingredients", CreateIngredientHandler(d))

	// Recipe routes
	api.GET("/recipes", ListRecipesHandler(d))
	api.GET("/recipes/:id", GetRecipeHandler(d))
	api.GET("/recipes/:id/get-link", ShortLinkHandler(d))
	auth.GET("/recipes/download_shopping_cart", DownloadShoppingCartHandler(d))
	auth.POST("/recipes", CreateRecipeHandler(d))
	auth.PATCH("/recipes/:id", UpdateRecipeHandler(d))
	auth.DELETE("/recipes/:id", DeleteRecipeHandler(d))
	auth.POST("/recipes/:id/favorite", AddFavoriteHandler(d))
	auth.DELETE("/recipes/:id/favorite", RemoveFavoriteHandler(d))
	auth.POST("/recipes/:id/shopping_cart", AddToCartHandler(d))
	auth.DELETE("/recipes/:id/shopping_cart", RemoveFromCartHandler(d))

	return r
}
