package domain

// Identity is the authenticated principal carried by a request.
type Identity struct {
	ID       string
	Username string
	Role     Role
}

// HasRole reports whether the identity holds one of roles.
func (i Identity) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// Authorize fails with ErrUnauthenticated when identity is nil and ErrForbidden when its
// role is outside allowed. An empty allowed set admits any authenticated identity.
func Authorize(identity *Identity, allowed ...Role) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if len(allowed) == 0 || identity.HasRole(allowed...) {
		return nil
	}
	return ErrForbidden
}

// EnsureNotSelf rejects lockout operations aimed at the caller's own account.
func EnsureNotSelf(actor Identity, targetID string) error {
	if actor.ID != "" && actor.ID == targetID {
		return ErrSelfLockout
	}
	return nil
}
