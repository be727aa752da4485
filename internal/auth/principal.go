package auth

import (
	"context"

	"github.com/tpanh/rentd/internal/errors"
)

// Principal is the authenticated identity of the current request. It is
// built once by the authentication middleware and never mutated afterwards.
type Principal struct {
	userID string
	roles  []string
}

func NewPrincipal(userID string, roles []string) Principal {
	copied := make([]string, len(roles))
	copy(copied, roles)
	return Principal{userID: userID, roles: copied}
}

func (p Principal) UserID() string {
	return p.userID
}

func (p Principal) Roles() []string {
	copied := make([]string, len(p.roles))
	copy(copied, p.roles)
	return copied
}

// HasRole reports whether the principal holds the given role. A bare role
// name and its "ROLE_"-prefixed spelling are the same authority.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.roles {
		if r == role || r == "ROLE_"+role {
			return true
		}
	}
	return false
}

func (p Principal) Equal(x Principal) bool {
	if p.userID != x.userID || len(p.roles) != len(x.roles) {
		return false
	}
	for i := range p.roles {
		if p.roles[i] != x.roles[i] {
			return false
		}
	}
	return true
}

type principalKey struct{}

// ContextWithPrincipal binds a principal into the request-scoped context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext is the tagged-optional read of the request principal.
// Permission evaluators use this form: absence is a deny, never a failure.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.userID == "" {
		return Principal{}, false
	}
	return p, true
}

// CurrentPrincipal returns the principal bound to the current request, or an
// unauthorized failure when none is bound. This is the only legal way for
// business logic to learn who is calling; it never falls back to an
// anonymous default.
func CurrentPrincipal(ctx context.Context) (Principal, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return Principal{}, errors.ErrUnauthorized
	}
	return p, nil
}

// CurrentUserID is a convenience over CurrentPrincipal and shares its
// failure behavior.
func CurrentUserID(ctx context.Context) (string, error) {
	p, err := CurrentPrincipal(ctx)
	if err != nil {
		return "", err
	}
	return p.UserID(), nil
}

// HasRole is a convenience over CurrentPrincipal and shares its failure
// behavior.
func HasRole(ctx context.Context, role string) (bool, error) {
	p, err := CurrentPrincipal(ctx)
	if err != nil {
		return false, err
	}
	return p.HasRole(role), nil
}
