package auth

import "github.com/iliyamo/portfolio-api/internal/model"

// Owned is implemented by every resource carrying a user_id foreign key.
type Owned interface {
	OwnerID() *uint64
}

// CanMutate reports whether actor may update or delete res.  Admins may
// mutate anything; users only rows whose owner is themselves.  Rows without
// an owner are admin-only.
func CanMutate(actor model.User, res Owned) bool {
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleUser:
		owner := res.OwnerID()
		return owner != nil && *owner == actor.ID
	}
	return false
}

// Authorize is CanMutate returning ErrForbidden on denial.
func Authorize(actor model.User, res Owned) error {
	if !CanMutate(actor, res) {
		return ErrForbidden
	}
	return nil
}
