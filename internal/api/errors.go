package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"foodgram/internal/domain"   // Domain error kinds
	"foodgram/internal/validate" // Bind error conversion

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// statusByKind maps domain error kinds to HTTP statuses
var statusByKind = []struct {
	kind   error
	status int
}{
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrBadRequest, http.StatusBadRequest},
}

// respondError writes err as {"detail": msg} or, for validation errors, as
// a map of field to messages. Unknown errors are logged and hidden.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, verr.Fields)
		return
	}
	for _, m := range statusByKind {
		if !errors.Is(err, m.kind) {
			continue
		}
		detail := m.kind.Error()
		var derr *domain.Error
		if errors.As(err, &derr) {
			detail = derr.Detail
		}
		c.AbortWithStatusJSON(m.status, gin.H{"detail": detail})
		return
	}
	logrus.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"error":  err,
	}).Error("Unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}

// bindJSON decodes the request body into dest and answers the request itself
// when that fails: 413 past the body limit, 400 for anything else
func bindJSON(c *gin.Context, dest any) bool {
	err := c.ShouldBindJSON(dest)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		logrus.WithFields(logrus.Fields{"path": c.Request.URL.Path, "limit": tooLarge.Limit}).Warn("Request body too large")
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "request body too large"})
		return false
	}
	respondError(c, validate.FromBinding(err))
	return false
}
