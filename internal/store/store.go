// Package store is the relational entity store. It wraps gorm and translates
// driver errors into the domain error kinds at its boundary.
package store

import (
	"context" // Request-scoped cancellation
	"errors"  // Error inspection
	"fmt"     // String formatting
	"strings" // String helpers

	"foodgram/internal/domain" // Domain models and error kinds

	"gorm.io/gorm" // ORM
)

// Store gives typed access to the entity tables. A Store obtained inside
// Transaction is bound to that transaction.
type Store struct {
	db *gorm.DB
}

// New wraps an open gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn inside a single database transaction. Returning an
// error from fn rolls back every write made through the passed Store.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// translate maps gorm errors to domain kinds. Requires TranslateError on the
// gorm config so drivers report ErrDuplicatedKey and friends.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: referenced entity does not exist", domain.ErrNotFound)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	return err
}

// exists reports whether any row of T matches the condition.
func exists[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(new(T)).Where(query, args...).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// deleteWhere removes the rows of T matching the condition and reports how
// many were removed.
func deleteWhere[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (int64, error) {
	res := db.WithContext(ctx).Where(query, args...).Delete(new(T))
	return res.RowsAffected, translate(res.Error)
}

// missingIDs returns the ids from want that have no row in T.
func missingIDs[T any](ctx context.Context, db *gorm.DB, want []uint) ([]uint, error) {
	if len(want) == 0 {
		return nil, nil
	}
	var found []uint
	if err := db.WithContext(ctx).Model(new(T)).Where("id IN ?", want).Pluck("id", &found).Error; err != nil {
		return nil, translate(err)
	}
	have := make(map[uint]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var missing []uint
	for _, id := range want {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// likePrefix escapes LIKE metacharacters with '!' so s matches literally as
// a prefix. Pair it with ESCAPE '!', which every supported driver accepts.
func likePrefix(s string) string {
	r := strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)
	return r.Replace(s) + "%"
}
