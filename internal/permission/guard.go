package permission

import (
	stderrors "errors"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tpanh/rentd/internal/auth"
	"github.com/tpanh/rentd/internal/errors"
)

var denials = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "rentd",
	Name:      "authorization_denials_total",
	Help:      "Number of requests denied by a route guard.",
}, []string{"reason"})

// CheckFunc evaluates an ownership check for the current request. A false
// result is a normal denial; a non-nil error means the check itself could
// not be evaluated and must surface as a server-side fault, not a denial.
type CheckFunc func(c echo.Context) (bool, error)

// Require guards a route with an ownership check. The two terminal outcomes
// are fixed: no principal renders 401, a denied check renders 403. Both are
// raised here and nowhere else; handlers behind the guard never emit their
// own authorization errors.
func Require(check CheckFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := auth.PrincipalFromContext(c.Request().Context()); !ok {
				denials.WithLabelValues("unauthenticated").Inc()
				return errors.ErrUnauthorized
			}

			ok, err := check(c)
			if err != nil {
				var appErr *errors.AppError
				if stderrors.As(err, &appErr) {
					return appErr
				}
				return errors.Wrap(err, 0)
			}
			if !ok {
				denials.WithLabelValues("forbidden").Inc()
				return errors.ErrForbidden
			}

			return next(c)
		}
	}
}

// Authenticated guards a route that needs a principal but no ownership
// check.
func Authenticated() echo.MiddlewareFunc {
	return Require(func(echo.Context) (bool, error) {
		return true, nil
	})
}

// RequireRole guards a route on role membership alone, compared under the
// bare/prefixed spelling rule.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := auth.PrincipalFromContext(c.Request().Context())
			if !ok {
				denials.WithLabelValues("unauthenticated").Inc()
				return errors.ErrUnauthorized
			}

			for _, role := range roles {
				if principal.HasRole(role) {
					return next(c)
				}
			}

			denials.WithLabelValues("forbidden").Inc()
			return errors.ErrForbidden
		}
	}
}

// ParamID parses a numeric path parameter. Guards use it to resolve the
// resource id an ownership check applies to.
func ParamID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, errors.ErrInvalidResourceID
	}
	return id, nil
}
