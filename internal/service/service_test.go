package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"strconv"
	"testing"

	"foodgram/internal/domain"
	"foodgram/internal/storage"
	"foodgram/internal/store"
	"foodgram/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc   *Service
	db    *gorm.DB
	cache *testutil.MemCache
	ctx   context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testutil.DB(t)
	cache := testutil.NewMemCache()
	svc := New(Options{
		Store:     store.New(gdb),
		Images:    storage.NewLocalStore(t.TempDir(), "/media"),
		Cache:     cache,
		JWTSecret: "test-secret",
	})
	return &fixture{svc: svc, db: gdb, cache: cache, ctx: context.Background()}
}

func imagePayload(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func count[T any](t *testing.T, db *gorm.DB, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(new(T))
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func requireFields(t *testing.T, err error, fields ...string) *domain.ValidationError {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, f := range fields {
		assert.Contains(t, verr.Fields, f)
	}
	return verr
}

func TestPageRequestBounds(t *testing.T) {
	offset, limit := PageRequest{}.bounds()
	assert.Equal(t, 0, offset)
	assert.Equal(t, DefaultPageLimit, limit)

	offset, limit = PageRequest{Page: 3, Limit: 10}.bounds()
	assert.Equal(t, 20, offset)
	assert.Equal(t, 10, limit)

	_, limit = PageRequest{Limit: 1000}.bounds()
	assert.Equal(t, MaxPageLimit, limit)
}

func TestCanModifyRecipe(t *testing.T) {
	r := &domain.Recipe{AuthorID: 7}
	assert.NoError(t, CanModifyRecipe(Actor{UserID: 7}, r))
	assert.NoError(t, CanModifyRecipe(Actor{UserID: 8, IsAdmin: true}, r))
	assert.ErrorIs(t, CanModifyRecipe(Actor{UserID: 8}, r), domain.ErrForbidden)
	assert.ErrorIs(t, CanModifyRecipe(Actor{}, r), domain.ErrUnauthenticated)
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
