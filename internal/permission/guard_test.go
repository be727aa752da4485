package permission

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpanh/rentd/internal/auth"
	"github.com/tpanh/rentd/internal/errors"
)

func invokeGuard(t *testing.T, mw echo.MiddlewareFunc, principal *auth.Principal) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if principal != nil {
		req = req.WithContext(auth.ContextWithPrincipal(req.Context(), *principal))
	}
	c := e.NewContext(req, httptest.NewRecorder())

	return mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
}

func TestRequire(t *testing.T) {
	manager := auth.NewPrincipal("mgr-1", []string{"ROLE_MANAGER"})

	t.Run("no principal yields 401", func(t *testing.T) {
		err := invokeGuard(t, Require(func(c echo.Context) (bool, error) {
			t.Fatal("check must not run without a principal")
			return true, nil
		}), nil)
		assert.Equal(t, errors.ErrUnauthorized, err)
	})

	t.Run("denied check yields 403", func(t *testing.T) {
		err := invokeGuard(t, Require(func(c echo.Context) (bool, error) {
			return false, nil
		}), &manager)
		assert.Equal(t, errors.ErrForbidden, err)
	})

	t.Run("allowed check passes through", func(t *testing.T) {
		err := invokeGuard(t, Require(func(c echo.Context) (bool, error) {
			return true, nil
		}), &manager)
		require.NoError(t, err)
	})

	t.Run("check failure is not a denial", func(t *testing.T) {
		err := invokeGuard(t, Require(func(c echo.Context) (bool, error) {
			return false, fmt.Errorf("connection refused")
		}), &manager)
		require.Error(t, err)
		assert.NotEqual(t, errors.ErrForbidden, err)
		assert.NotEqual(t, errors.ErrUnauthorized, err)
	})

	t.Run("app errors from the check render as themselves", func(t *testing.T) {
		err := invokeGuard(t, Require(func(c echo.Context) (bool, error) {
			return false, errors.ErrInvalidResourceID
		}), &manager)
		assert.Equal(t, errors.ErrInvalidResourceID, err)
	})
}

func TestRequireRole(t *testing.T) {
	admin := auth.NewPrincipal("admin-1", []string{"ROLE_ADMIN"})
	manager := auth.NewPrincipal("mgr-1", []string{"MANAGER"})

	assert.Equal(t, errors.ErrUnauthorized, invokeGuard(t, RequireRole("ADMIN"), nil))
	assert.Equal(t, errors.ErrForbidden, invokeGuard(t, RequireRole("ADMIN"), &manager))
	require.NoError(t, invokeGuard(t, RequireRole("ADMIN"), &admin))
	require.NoError(t, invokeGuard(t, RequireRole("ADMIN", "MANAGER"), &manager))
}

func TestParamID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("42")

	id, err := ParamID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	c.SetParamValues("not-a-number")
	_, err = ParamID(c, "id")
	assert.Equal(t, errors.ErrInvalidResourceID, err)
}
