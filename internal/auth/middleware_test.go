package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	valid  map[string]bool
	userID string
	roles  []string
	err    error
	panics bool
}

func (f *fakeVerifier) Verify(token string) bool {
	if f.panics {
		panic("verifier blew up")
	}
	return f.valid[token]
}

func (f *fakeVerifier) ExtractUserID(string) (string, error) {
	return f.userID, f.err
}

func (f *fakeVerifier) ExtractRoles(string) ([]string, error) {
	return f.roles, f.err
}

func invoke(t *testing.T, verifier TokenVerifier, header string) (Principal, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var bound Principal
	var ok bool
	next := func(c echo.Context) error {
		bound, ok = PrincipalFromContext(c.Request().Context())
		return nil
	}

	handler := Middleware(verifier, hclog.NewNullLogger())(next)
	require.NoError(t, handler(c))
	return bound, ok
}

func TestMiddlewareBindsPrincipal(t *testing.T) {
	verifier := &fakeVerifier{
		valid:  map[string]bool{"good-token": true},
		userID: "mgr-1",
		roles:  []string{"ROLE_MANAGER"},
	}

	p, ok := invoke(t, verifier, "Bearer good-token")
	require.True(t, ok)
	assert.True(t, NewPrincipal("mgr-1", []string{"ROLE_MANAGER"}).Equal(p))
}

func TestMiddlewareLeavesRequestAnonymous(t *testing.T) {
	valid := &fakeVerifier{valid: map[string]bool{"good-token": true}, userID: "u1", roles: []string{"USER"}}

	tests := []struct {
		name     string
		verifier TokenVerifier
		header   string
	}{
		{name: "no header", verifier: valid, header: ""},
		{name: "wrong scheme", verifier: valid, header: "Basic good-token"},
		{name: "case-sensitive prefix", verifier: valid, header: "bearer good-token"},
		{name: "invalid token", verifier: valid, header: "Bearer bad-token"},
		{name: "claim extraction fails", verifier: &fakeVerifier{valid: map[string]bool{"t": true}, err: errors.New("boom")}, header: "Bearer t"},
		{name: "empty subject", verifier: &fakeVerifier{valid: map[string]bool{"t": true}, userID: ""}, header: "Bearer t"},
		{name: "verifier panics", verifier: &fakeVerifier{panics: true}, header: "Bearer t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := invoke(t, tt.verifier, tt.header)
			assert.False(t, ok)
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc", extractBearerToken("Bearer abc"))
	assert.Equal(t, "", extractBearerToken("Bearerabc"))
	assert.Equal(t, "", extractBearerToken("bearer abc"))
	assert.Equal(t, "", extractBearerToken(""))
}
