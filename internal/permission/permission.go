// Package permission holds one ownership evaluator per protected resource
// type. Every evaluator answers "may this principal act on this instance"
// with the same shape: no principal is a deny, the administrative role
// short-circuits to allow, anything else is a single existence query over
// the resource's ownership chain. Evaluators are read-only and never cache;
// ownership may change between requests and a revoked manager must lose
// access on the very next one.
package permission

import (
	"context"

	"github.com/tpanh/rentd/internal/auth"
)

// AdminRole satisfies every ownership check without inspecting the chain.
// Compared under the bare/prefixed spelling rule.
const AdminRole = "ADMIN"

// resolvePrincipal is the shared entry point of all evaluators: a
// tagged-optional read of the request principal. Absence is a deny, never a
// failure.
func resolvePrincipal(ctx context.Context) (auth.Principal, bool) {
	return auth.PrincipalFromContext(ctx)
}
