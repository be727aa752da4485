package auth

import (
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// TokenVerifier is the boundary to the token service. Implementations
// validate a presented credential and expose its claims; the middleware
// treats them as opaque primitives.
type TokenVerifier interface {
	Verify(token string) bool
	ExtractUserID(token string) (string, error)
	ExtractRoles(token string) ([]string, error)
}

// Middleware authenticates a request from its Authorization header. It runs
// once per request, before routing. A missing, malformed, invalid or expired
// credential leaves the request anonymous; this stage never rejects a
// request, authorization does that later when identity is actually required.
func Middleware(verifier TokenVerifier, logger hclog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p, ok := authenticate(verifier, logger, c); ok {
				request := c.Request()
				c.SetRequest(request.WithContext(ContextWithPrincipal(request.Context(), p)))
			}
			return next(c)
		}
	}
}

func authenticate(verifier TokenVerifier, logger hclog.Logger, c echo.Context) (p Principal, ok bool) {
	defer func() {
		// authentication must never fail past itself
		if r := recover(); r != nil {
			logger.Debug("authentication failed", "reason", r)
			p, ok = Principal{}, false
		}
	}()

	value := extractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if value == "" {
		return Principal{}, false
	}

	if !verifier.Verify(value) {
		logger.Debug("authentication failed", "reason", "invalid token")
		return Principal{}, false
	}

	userID, err := verifier.ExtractUserID(value)
	if err != nil || userID == "" {
		logger.Debug("authentication failed", "reason", "token has no subject")
		return Principal{}, false
	}

	roles, err := verifier.ExtractRoles(value)
	if err != nil {
		logger.Debug("authentication failed", "reason", "token has no roles claim")
		return Principal{}, false
	}

	return NewPrincipal(userID, roles), true
}

// extractBearerToken returns the credential after the scheme prefix. Only an
// exact, case-sensitive prefix match is accepted.
func extractBearerToken(header string) string {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return header[len(bearerPrefix):]
}
