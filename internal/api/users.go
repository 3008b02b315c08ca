package api

import (
	"net/http" // HTTP status codes

	"foodgram/internal/middleware" // Request identity
	"foodgram/internal/service"    // Business operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRequest is the sign-up form
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,max=254,email"`       // E-mail must be provided
	Username  string `json:"username" binding:"required,max=150,username"` // Username must be provided
	FirstName string `json:"first_name" binding:"required,max=150"`        // First name
	LastName  string `json:"last_name" binding:"required,max=150"`         // Last name
	Password  string `json:"password" binding:"required"`                  // Plain password, hashed by the service
}

// SetPasswordRequest changes the caller's password
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,nefield=CurrentPassword"`
}

// AvatarRequest carries a base64 image
type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// AvatarResponse is the stored avatar URL
type AvatarResponse struct {
	Avatar string `json:"avatar"`
}

// RegisterHandler creates a user account
func RegisterHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		user, err := d.Service.Register(c.Request.Context(), service.Registration{
			Email:     req.Email,
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Password:  req.Password,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, RegisteredUserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})
	}
}

// ListUsersHandler returns a page of users
func ListUsersHandler(d Deps) gin.HandlerFunc {
	p := d.presenter()
	return func(c *gin.Context) {
		req := parsePage(c)
		page, err := d.Service.ListUsers(c.Request.Context(), middleware.ActorFrom(c), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pageResponse(c, d.PublicURL, req, page, p.user))
	}
}

// GetUserHandler returns one user profile
func GetUserHandler(d Deps) gin.HandlerFunc {
	p := d.presenter()
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		view, err := d.Service.GetUser(c.Request.Context(), middleware.ActorFrom(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p.user(*view))
	}
}

// MeHandler returns the caller's own profile
func MeHandler(d Deps) gin.HandlerFunc {
	p := d.presenter()
	return func(c *gin.Context) {
		view, err := d.Service.Me(c.Request.Context(), middleware.ActorFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p.user(*view))
	}
}

// SetAvatarHandler stores a new avatar for the caller
func SetAvatarHandler(d Deps) gin.HandlerFunc {
	p := d.presenter()
	return func(c *gin.Context) {
		var req AvatarRequest
		if !bindJSON(c, &req) {
			return
		}
		user, err := d.Service.SetAvatar(c.Request.Context(), middleware.ActorFrom(c), req.Avatar)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, AvatarResponse{Avatar: p.mediaURL(user.Avatar)})
	}
}

// DeleteAvatarHandler removes the caller's avatar
func DeleteAvatarHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := d.Service.DeleteAvatar(c.Request.Context(), middleware.ActorFrom(c)); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// SetPasswordHandler replaces the caller's password
func SetPasswordHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetPasswordRequest
		if !bindJSON(c, &req) {
			return
		}
		err := d.Service.SetPassword(c.Request.Context(), middleware.ActorFrom(c), req.CurrentPassword, req.NewPassword)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// SubscribeHandler follows the author in the path
func SubscribeHandler(d Deps) gin.HandlerFunc {
	p := d.presenter()
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		view, err := d.Service.Follow(c.Request.Context(), middleware.ActorFrom(c), id, intQuery(c, "recipes_limit", 0))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p.subscription(*view))
	}
}

// UnsubscribeHandler stops following the author in the path
func UnsubscribeHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := d.Service.Unfollow(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// SubscriptionsHandler lists the authors the caller follows
func SubscriptionsHandler(d Deps) gin.HandlerFunc {
	p := d.presenter()
	return func(c *gin.Context) {
		req := parsePage(c)
		page, err := d.Service.Subscriptions(c.Request.Context(), middleware.ActorFrom(c), req, intQuery(c, "recipes_limit", 0))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pageResponse(c, d.PublicURL, req, page, p.subscription))
	}
}
