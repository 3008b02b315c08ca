package middleware

import (
	"net/http" // Body size limiting

	"github.com/gin-gonic/gin" // Gin web framework
)

// BodyLimit caps the request body at limit bytes; reads past it fail with
// *http.MaxBytesError
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit) // Wrap the body reader
		}
		c.Next()
	}
}
