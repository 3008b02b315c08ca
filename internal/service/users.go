package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection

	"foodgram/internal/domain"   // Domain models and error kinds
	"foodgram/internal/utils"    // JWT and cache helpers
	"foodgram/internal/validate" // Input validation

	"github.com/sirupsen/logrus" // Structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
)

const (
	avatarPrefix      = "users/avatars"
	maxPasswordLength = 128
)

var (
	ErrInvalidCredentials = domain.NewError(domain.ErrBadRequest, "unable to log in with provided credentials")
	ErrWrongPassword      = domain.NewError(domain.ErrBadRequest, "incorrect password")
	ErrInvalidToken       = domain.NewError(domain.ErrUnauthenticated, "invalid token")
)

// Registration is the sign-up form.
type Registration struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// UserView is a user as seen by one actor.
type UserView struct {
	User         domain.User
	IsSubscribed bool
}

// Register validates the form, hashes the password once and creates the user.
func (s *Service) Register(ctx context.Context, in Registration) (*domain.User, error) {
	if err := validate.Collect(
		validate.Email(ctx, in.Email, s.store.EmailExists),
		validate.Username(ctx, in.Username, s.store.UsernameExists),
		validate.Required("first_name", in.FirstName, validate.MaxNameLength),
		validate.Required("last_name", in.LastName, validate.MaxNameLength),
		validate.Required("password", in.Password, maxPasswordLength),
	); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		Email:     in.Email,
		Username:  in.Username,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.NewError(domain.ErrBadRequest, "a user with that email or username already exists")
		}
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
	return &user, nil
}

// Login checks the credentials and issues a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := utils.GenerateJWT(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", err
	}
	logrus.WithField("user_id", user.ID).Info("User logged in")
	return token, nil
}

// Logout revokes the token described by claims.
func (s *Service) Logout(ctx context.Context, claims *utils.Claims) error {
	if _, ok := s.cache.(utils.NopCache); ok {
		logrus.WithField("user_id", claims.UserID).Warn("Logout revoked nothing: no token denylist is configured, the token stays valid until it expires")
		return nil
	}
	if err := utils.RevokeToken(ctx, s.cache, claims); err != nil {
		return err
	}
	logrus.WithField("user_id", claims.UserID).Info("User logged out")
	return nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, *utils.Claims, error) {
	claims, err := utils.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	revoked, err := utils.IsRevoked(ctx, s.cache, claims)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, ErrInvalidToken
	}
	user, err := s.store.UserByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, ErrInvalidToken
	}
	if err != nil {
		return nil, nil, err
	}
	return user, claims, nil
}

// SetPassword replaces the actor's password after checking the current one.
func (s *Service) SetPassword(ctx context.Context, actor Actor, current, next string) error {
	if err := actor.require(); err != nil {
		return err
	}
	if err := validate.Collect(
		validate.Required("current_password", current, maxPasswordLength),
		validate.Required("new_password", next, maxPasswordLength),
	); err != nil {
		return err
	}
	user, err := s.store.UserByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil || current == next {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	logrus.WithField("user_id", user.ID).Info("Password changed")
	return nil
}

// SetAvatar stores a new avatar and drops the previous one.
func (s *Service) SetAvatar(ctx context.Context, actor Actor, payload string) (*domain.User, error) {
	if err := actor.require(); err != nil {
		return nil, err
	}
	if err := validate.Required("avatar", payload, 0); err != nil {
		return nil, err
	}
	user, err := s.store.UserByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	key, err := s.uploadImage(ctx, avatarPrefix, "avatar", payload)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateAvatar(ctx, user.ID, key); err != nil {
		s.discardImage(ctx, key)
		return nil, err
	}
	s.discardImage(ctx, user.Avatar)
	user.Avatar = key
	return user, nil
}

// DeleteAvatar clears the actor's avatar and discards the stored image.
func (s *Service) DeleteAvatar(ctx context.Context, actor Actor) error {
	if err := actor.require(); err != nil {
		return err
	}
	user, err := s.store.UserByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if err := s.store.UpdateAvatar(ctx, user.ID, ""); err != nil {
		return err
	}
	s.discardImage(ctx, user.Avatar)
	return nil
}

// GetUser returns a profile annotated for actor.
func (s *Service) GetUser(ctx context.Context, actor Actor, id uint) (*UserView, error) {
	user, err := s.store.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.annotateUsers(ctx, actor, []domain.User{*user})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Me returns the actor's own profile.
func (s *Service) Me(ctx context.Context, actor Actor) (*UserView, error) {
	if err := actor.require(); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, actor, actor.UserID)
}

// ListUsers returns one page of profiles ordered by id.
func (s *Service) ListUsers(ctx context.Context, actor Actor, page PageRequest) (Page[UserView], error) {
	offset, limit := page.bounds()
	users, total, err := s.store.ListUsers(ctx, offset, limit)
	if err != nil {
		return Page[UserView]{}, err
	}
	views, err := s.annotateUsers(ctx, actor, users)
	if err != nil {
		return Page[UserView]{}, err
	}
	return Page[UserView]{Items: views, Total: total}, nil
}

func (s *Service) annotateUsers(ctx context.Context, actor Actor, users []domain.User) ([]UserView, error) {
	views := make([]UserView, len(users))
	ids := make([]uint, len(users))
	for i, u := range users {
		views[i].User = u
		ids[i] = u.ID
	}
	if !actor.Authenticated() {
		return views, nil
	}
	following, err := s.store.FollowingAmong(ctx, actor.UserID, ids)
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].IsSubscribed = following[ids[i]]
	}
	return views, nil
}
