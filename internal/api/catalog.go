package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListTagsHandler returns every tag, unpaged
func ListTagsHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, err := d.Service.ListTags(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tags)
	}
}

// GetTagHandler returns one tag
func GetTagHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		tag, err := d.Service.GetTag(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tag)
	}
}

// ListIngredientsHandler returns ingredients, filtered by ?name= prefix
func ListIngredientsHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := d.Service.ListIngredients(c.Request.Context(), c.Query("name"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetIngredientHandler returns one ingredient
func GetIngredientHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		item, err := d.Service.GetIngredient(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}
