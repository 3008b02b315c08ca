package api

import (
	"net/http" // HTTP status codes

	"foodgram/internal/middleware" // Request identity

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// TagRequest is the admin form for a new tag
type TagRequest struct {
	Name string `json:"name" binding:"required,max=32"`      // Display name
	Slug string `json:"slug" binding:"required,max=32,slug"` // URL slug
}

// IngredientRequest is the admin form for a new ingredient
type IngredientRequest struct {
	Name            string `json:"name" binding:"required,max=128"`            // Ingredient name
	MeasurementUnit string `json:"measurement_unit" binding:"required,max=64"` // Unit
}

// CreateTagHandler adds a tag (admin only)
func CreateTagHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TagRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		actor := middleware.ActorFrom(c)
		tag, err := d.Service.CreateTag(c.Request.Context(), actor, req.Name, req.Slug)
		if err != nil {
			logrus.WithFields(logrus.Fields{"admin_id": actor.UserID, "slug": req.Slug, "error": err}).Warn("Tag not created")
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, tag)
	}
}

// CreateIngredientHandler adds an ingredient (admin only)
func CreateIngredientHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IngredientRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		actor := middleware.ActorFrom(c)
		item, err := d.Service.CreateIngredient(c.Request.Context(), actor, req.Name, req.MeasurementUnit)
		if err != nil {
			logrus.WithFields(logrus.Fields{"admin_id": actor.UserID, "name": req.Name, "error": err}).Warn("Ingredient not created")
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}
