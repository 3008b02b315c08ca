package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"foodgram/internal/domain"  // Domain error kinds
	"foodgram/internal/service" // Token resolution and identity
	"foodgram/internal/utils"   // JWT claims

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// Context keys set by Authenticate
const (
	ActorKey  = "actor"
	ClaimsKey = "claims"
	UserIDKey = "userID"
)

// tokenPrefixes are the accepted Authorization schemes
var tokenPrefixes = []string{"Token ", "Bearer "}

// Authenticate resolves an optional token. Requests without a token continue
// anonymously; requests with a bad token are rejected.
func Authenticate(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" {
			c.Next() // Anonymous request
			return
		}
		tokenStr, ok := extractToken(authHeader)
		if !ok {
			// Unknown scheme, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid authorization header"})
			return
		}
		user, claims, err := svc.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthenticated) {
				logrus.WithError(err).Error("token lookup failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
				return
			}
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
			return
		}
		c.Set(ActorKey, service.ActorOf(user)) // Store identity in context
		c.Set(ClaimsKey, claims)               // Keep claims for logout
		c.Set(UserIDKey, user.ID)              // Store userID in context
		c.Next()                               // Proceed to the next handler
	}
}

// RequireAuth rejects anonymous requests
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": domain.ErrUnauthenticated.Error()})
			return
		}
		c.Next()
	}
}

// ActorFrom returns the request identity, anonymous when unset
func ActorFrom(c *gin.Context) service.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(service.Actor); ok {
			return actor
		}
	}
	return service.Actor{}
}

// ClaimsFrom returns the verified token claims, nil for anonymous requests
func ClaimsFrom(c *gin.Context) *utils.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		claims, _ := v.(*utils.Claims)
		return claims
	}
	return nil
}

func extractToken(header string) (string, bool) {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(header, prefix) {
			token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
			return token, token != ""
		}
	}
	return "", false
}
