package validate

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"foodgram/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagForm struct {
	Name string `json:"name" binding:"required,max=32"`
	Slug string `json:"slug" binding:"required,slug"`
}

func bind(t *testing.T, body string, dest any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(dest)
}

func TestFromBinding(t *testing.T) {
	require.NoError(t, RegisterBinding())

	var form tagForm
	require.NoError(t, bind(t, `{"name":"Lunch","slug":"lunch"}`, &form))

	err := FromBinding(bind(t, `{"name":"","slug":"bad slug"}`, &form))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"this field is required"}, verr.Fields["name"])
	assert.Contains(t, verr.Fields, "slug")

	err = FromBinding(bind(t, `{"name": 5}`, &form))
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	err = FromBinding(bind(t, `{"name":`, &form))
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}
