package service

import "foodgram/internal/domain"

// CanModifyRecipe allows the recipe's author and admins.
func CanModifyRecipe(a Actor, r *domain.Recipe) error {
	if err := a.require(); err != nil {
		return err
	}
	if a.IsAdmin || r.AuthorID == a.UserID {
		return nil
	}
	return domain.ErrForbidden
}

func requireAdmin(a Actor) error {
	if err := a.require(); err != nil {
		return err
	}
	if !a.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}
