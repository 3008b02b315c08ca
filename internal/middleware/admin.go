package middleware

import (
	"net/http" // HTTP status codes

	"foodgram/internal/domain" // Domain error kinds

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware checks the admin flag of the user loaded by Authenticate
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c) // Get identity from context
		// Check if the request is authenticated
		if !actor.Authenticated() {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": domain.ErrUnauthenticated.Error()})
			return
		}
		// Check if user is admin
		if !actor.IsAdmin {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": domain.ErrForbidden.Error()})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
