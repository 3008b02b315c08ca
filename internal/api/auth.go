package api

import (
	"net/http" // HTTP status codes

	"foodgram/internal/middleware" // Request identity

	"github.com/gin-gonic/gin" // Gin web framework
)

// LoginRequest is the token login form
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // E-mail must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// AuthResponse carries the issued token
type AuthResponse struct {
	Token string `json:"auth_token"` // JWT token
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		token, err := d.Service.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// LogoutHandler revokes the token the request was made with
func LogoutHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := d.Service.Logout(c.Request.Context(), middleware.ClaimsFrom(c)); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
