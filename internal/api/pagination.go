package api

import (
	"strconv" // String conversion

	"foodgram/internal/service" // Page requests

	"github.com/gin-gonic/gin" // Gin web framework
)

// parsePage reads ?page= and ?limit=; invalid values fall back to defaults
func parsePage(c *gin.Context) service.PageRequest {
	req := service.PageRequest{Page: 1, Limit: service.DefaultPageLimit}
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			req.Page = v // Set page if valid
		}
	}
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			req.Limit = min(v, service.MaxPageLimit) // Set limit within bounds
		}
	}
	return req
}

// pageLink returns the URL of the page delta steps away, nil past either end
func pageLink(c *gin.Context, publicURL string, req service.PageRequest, total int64, delta int) *string {
	target := req.Page + delta
	if target < 1 {
		return nil
	}
	if int64((target-1)*req.Limit) >= total {
		return nil
	}
	q := c.Request.URL.Query()
	if target == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(target))
	}
	link := publicURL + c.Request.URL.Path
	if encoded := q.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return &link
}

// intQuery parses an optional integer query parameter
func intQuery(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}

// boolQuery treats 1 and true as set
func boolQuery(c *gin.Context, key string) bool {
	switch c.Query(key) {
	case "1", "true", "True":
		return true
	}
	return false
}
