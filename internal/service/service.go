// Package service holds the business rules: recipe association sync,
// shopping cart aggregation, relation toggles and account management.
// Every call receives the requesting identity explicitly as an Actor.
package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection
	"time"    // Durations

	"foodgram/internal/domain"  // Domain models and error kinds
	"foodgram/internal/storage" // Image storage
	"foodgram/internal/store"   // Database access
	"foodgram/internal/utils"   // JWT and cache helpers

	"github.com/sirupsen/logrus" // Structured logging
)

const (
	DefaultPageLimit = 6
	MaxPageLimit     = 100
	DefaultCacheTTL  = 5 * time.Minute
	DefaultTokenTTL  = 24 * time.Hour
)

// Options wires the collaborators of a Service.
type Options struct {
	Store     *store.Store
	Images    storage.ImageStore
	Cache     utils.Cache // NopCache when nil
	CacheTTL  time.Duration
	JWTSecret string
	TokenTTL  time.Duration
}

// Service holds the business operations behind the HTTP API.
type Service struct {
	store     *store.Store
	images    storage.ImageStore
	cache     utils.Cache
	cacheTTL  time.Duration
	jwtSecret string
	tokenTTL  time.Duration
}

// New builds a Service, filling unset options with defaults.
func New(opts Options) *Service {
	s := &Service{
		store:     opts.Store,
		images:    opts.Images,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		jwtSecret: opts.JWTSecret,
		tokenTTL:  opts.TokenTTL,
	}
	if s.cache == nil {
		s.cache = utils.NopCache{}
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = DefaultCacheTTL
	}
	if s.tokenTTL <= 0 {
		s.tokenTTL = DefaultTokenTTL
	}
	return s
}

// Actor is the identity a call is made on behalf of. The zero value is an
// anonymous visitor.
type Actor struct {
	UserID  uint
	IsAdmin bool
}

// ActorOf returns the actor for u, anonymous when u is nil.
func ActorOf(u *domain.User) Actor {
	if u == nil {
		return Actor{}
	}
	return Actor{UserID: u.ID, IsAdmin: u.IsAdmin}
}

// Authenticated reports whether the actor is a signed-in user.
func (a Actor) Authenticated() bool { return a.UserID != 0 }

func (a Actor) require() error {
	if !a.Authenticated() {
		return domain.ErrUnauthenticated
	}
	return nil
}

// PageRequest selects one page; Page is 1-based.
type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) bounds() (offset, limit int) {
	limit = p.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	limit = min(limit, MaxPageLimit)
	page := max(p.Page, 1)
	return (page - 1) * limit, limit
}

// Page is one slice of a larger ordered result.
type Page[T any] struct {
	Items []T
	Total int64
}

// uploadImage stores a base64 payload and reports bad payloads on field.
func (s *Service) uploadImage(ctx context.Context, prefix, field, payload string) (string, error) {
	key, err := storage.Upload(ctx, s.images, prefix, payload)
	if errors.Is(err, storage.ErrInvalidImage) {
		return "", domain.FieldError(field, storage.ErrInvalidImage.Error())
	}
	return key, err
}

// discardImage removes a stored image; failures are only logged.
func (s *Service) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("failed to delete image")
	}
}

// ImageURL resolves a stored image key.
func (s *Service) ImageURL(key string) string {
	if key == "" {
		return ""
	}
	return s.images.URL(key)
}

// cached serves key from the cache or loads and stores it. Cache failures
// degrade to a direct load.
func cached[T any](ctx context.Context, s *Service, key string, load func(context.Context) (T, error)) (T, error) {
	var v T
	found, err := s.cache.Get(ctx, key, &v)
	if err == nil && found {
		return v, nil
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache read failed")
	}
	v, err = load(ctx)
	if err != nil {
		return v, err
	}
	if err := s.cache.Set(ctx, key, v, s.cacheTTL); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache write failed")
	}
	return v, nil
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logrus.WithFields(logrus.Fields{"keys": keys, "error": err}).Warn("cache invalidation failed")
	}
}
