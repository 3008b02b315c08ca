package store

import (
	"context" // Request-scoped cancellation

	"foodgram/internal/domain" // Domain models and error kinds

	"gorm.io/gorm/clause" // SQL clauses
)

// CreateUser inserts u.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(u).Error)
}

// UserByID returns domain.ErrNotFound for an unknown id.
func (s *Store) UserByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := s.conn(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UserByEmail returns domain.ErrNotFound for an unknown address.
func (s *Store) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := s.conn(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UsernameExists reports whether the username is taken.
func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	return exists[domain.User](ctx, s.db, "username = ?", username)
}

// EmailExists reports whether the address is taken.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	return exists[domain.User](ctx, s.db, "email = ?", email)
}

// ListUsers returns one page of users ordered by id and the total count.
func (s *Store) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	var total int64
	if err := s.conn(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var users []domain.User
	if err := s.conn(ctx).Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, translate(err)
	}
	return users, total, nil
}

// UpdatePassword stores a new password hash.
func (s *Store) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	return s.updateUser(ctx, userID, "password", hash)
}

// UpdateAvatar stores the avatar image key, empty to clear it.
func (s *Store) UpdateAvatar(ctx context.Context, userID uint, key string) error {
	return s.updateUser(ctx, userID, "avatar", key)
}

func (s *Store) updateUser(ctx context.Context, userID uint, column string, value any) error {
	res := s.conn(ctx).Model(&domain.User{}).Where("id = ?", userID).Update(column, value)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteUser returns domain.ErrNotFound when no row was removed.
func (s *Store) DeleteUser(ctx context.Context, userID uint) error {
	n, err := deleteWhere[domain.User](ctx, s.db, "id = ?", userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
