package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, expiration time.Duration) *Service {
	t.Helper()
	s, err := NewService("a-test-secret-of-sufficient-length", expiration)
	require.NoError(t, err)
	return s
}

func TestGenerateAndVerify(t *testing.T) {
	s := newTestService(t, time.Hour)

	value, err := s.Generate("user-1", []string{"MANAGER"})
	require.NoError(t, err)
	assert.True(t, s.Verify(value))

	userID, err := s.ExtractUserID(value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	roles, err := s.ExtractRoles(value)
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_MANAGER"}, roles)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	s := newTestService(t, -time.Minute)

	value, err := s.Generate("user-1", []string{"MANAGER"})
	require.NoError(t, err)

	assert.False(t, s.Verify(value))
	assert.Nil(t, s.ParseAndValidate(value))
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	s := newTestService(t, time.Hour)

	other, err := NewService("a-different-secret-entirely-here", time.Hour)
	require.NoError(t, err)

	value, err := other.Generate("user-1", []string{"MANAGER"})
	require.NoError(t, err)

	assert.False(t, s.Verify(value))
	assert.Nil(t, s.ParseAndValidate(value))
}

func TestParseAndValidate(t *testing.T) {
	s := newTestService(t, time.Hour)

	value, err := s.Generate("user-7", []string{"MANAGER", "USER"})
	require.NoError(t, err)

	p := s.ParseAndValidate(value)
	require.NotNil(t, p)
	assert.Equal(t, "user-7", p.UserID)
	assert.Equal(t, []string{"ROLE_MANAGER", "ROLE_USER"}, p.Roles)
	assert.True(t, p.ExpiresAt.After(p.IssuedAt))

	assert.Nil(t, s.ParseAndValidate("not-a-token"))
	assert.Nil(t, s.ParseAndValidate(""))
}
