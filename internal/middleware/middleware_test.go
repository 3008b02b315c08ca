package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodgram/internal/middleware"
	"foodgram/internal/service"
	"foodgram/internal/store"
	"foodgram/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	svc    *service.Service
	router *gin.Engine
	user   string
	admin  string
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := testutil.DB(t)
	testutil.SeedUser(t, gdb, "alice")
	testutil.SeedAdmin(t, gdb, "root")
	svc := service.New(service.Options{
		Store:     store.New(gdb),
		Cache:     testutil.NewMemCache(),
		JWTSecret: "test-secret",
	})

	whoami := func(c *gin.Context) {
		actor := middleware.ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "admin": actor.IsAdmin})
	}
	r := gin.New()
	r.Use(middleware.Authenticate(svc))
	r.GET("/open", whoami)
	r.GET("/private", middleware.RequireAuth(), whoami)
	r.GET("/admin", middleware.AdminOnlyMiddleware(), whoami)

	e := &env{svc: svc, router: r}
	var err error
	e.user, err = svc.Login(context.Background(), "alice@example.com", testutil.Password)
	require.NoError(t, err)
	e.admin, err = svc.Login(context.Background(), "root@example.com", testutil.Password)
	require.NoError(t, err)
	return e
}

func (e *env) get(path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestAuthenticateIsOptional(t *testing.T) {
	e := setup(t)
	w := e.get("/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0,"admin":false}`, w.Body.String())
}

func TestAuthenticateAcceptsBothSchemes(t *testing.T) {
	e := setup(t)
	for _, scheme := range []string{"Token ", "Bearer "} {
		w := e.get("/private", scheme+e.user)
		assert.Equal(t, http.StatusOK, w.Code, scheme)
		assert.Contains(t, w.Body.String(), `"admin":false`)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	e := setup(t)
	for name, header := range map[string]string{
		"unknown scheme": "Basic abc",
		"empty token":    "Token ",
		"garbage":        "Token not-a-jwt",
	} {
		w := e.get("/open", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.Contains(t, w.Body.String(), "detail", name)
	}
}

func TestAuthenticateRejectsRevokedToken(t *testing.T) {
	e := setup(t)
	_, claims, err := e.svc.Authenticate(context.Background(), e.user)
	require.NoError(t, err)
	require.NoError(t, e.svc.Logout(context.Background(), claims))

	w := e.get("/private", "Token "+e.user)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth(t *testing.T) {
	e := setup(t)
	w := e.get("/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnlyMiddleware(t *testing.T) {
	e := setup(t)
	assert.Equal(t, http.StatusUnauthorized, e.get("/admin", "").Code)
	assert.Equal(t, http.StatusForbidden, e.get("/admin", "Token "+e.user).Code)

	w := e.get("/admin", "Token "+e.admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin":true`)
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.BodyLimit(8))
	r.POST("/echo", func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, string(raw))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("short")))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "short", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("well past eight bytes")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
