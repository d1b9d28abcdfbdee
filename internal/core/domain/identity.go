package domain

import "context"

// Identity is the caller resolved from a verified session token.
type Identity struct {
	UserID     string
	Role       Role
	MerchantID string
}

// RoleSet is the set of roles an endpoint accepts. Order is irrelevant.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether r is a member of the set.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Authorize decides whether id may access an endpoint requiring one of the
// roles in required. A missing identity is ErrUnauthenticated, never
// ErrForbidden.
func Authorize(required RoleSet, id *Identity) error {
	if id == nil {
		return ErrUnauthenticated
	}
	if !required.Has(id.Role) {
		return ErrForbidden
	}
	return nil
}

type identityKey struct{}

// ContextWithIdentity returns a copy of ctx carrying id.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by ContextWithIdentity.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}
