package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpanh/rentd/internal/config"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/errors"
)

func userFixture(t *testing.T, status domain.UserStatus, active bool) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:       "u1",
		Username: "an",
		FullName: "Nguyen Van An",
		Email:    "an@example.com",
		Roles:    domain.RoleSet{domain.RoleManager},
		Status:   status,
		Active:   active,
	}
	require.NoError(t, user.SetPassword("s3cret"))
	return user
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	repo.users["u1"] = userFixture(t, domain.UserStatusActive, true)

	svc := newTestService(t, repo)

	signed, user, err := svc.Login(context.Background(), "an", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.Equal(t, "u1", user.ID)

	payload := svc.tokens.ParseAndValidate(signed)
	require.NotNil(t, payload)
	assert.Equal(t, "u1", payload.UserID)
	assert.Contains(t, payload.Roles, "ROLE_MANAGER")
}

func TestLoginFailures(t *testing.T) {
	repo := newFakeRepo()
	repo.users["u1"] = userFixture(t, domain.UserStatusActive, true)

	svc := newTestService(t, repo)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "", "s3cret")
	assert.ErrorIs(t, err, errors.ErrUsernameRequired)

	_, _, err = svc.Login(ctx, "an", "")
	assert.ErrorIs(t, err, errors.ErrPasswordRequired)

	// unknown user and wrong password are indistinguishable to the caller
	_, _, err = svc.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "an", "wrong")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAccounts(t *testing.T) {
	repo := newFakeRepo()
	repo.users["u1"] = userFixture(t, domain.UserStatusPending, true)
	deactivated := userFixture(t, domain.UserStatusActive, false)
	deactivated.ID = "u2"
	deactivated.Username = "binh"
	repo.users["u2"] = deactivated

	svc := newTestService(t, repo)

	_, _, err := svc.Login(context.Background(), "an", "s3cret")
	assert.ErrorIs(t, err, errors.ErrUserInactive)

	_, _, err = svc.Login(context.Background(), "binh", "s3cret")
	assert.ErrorIs(t, err, errors.ErrUserInactive)
}

func TestRegisterCreatesPendingManager(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	user, err := svc.Register(context.Background(), "an", "s3cret", "Nguyen Van An", "an@example.com")
	require.NoError(t, err)

	assert.Equal(t, domain.UserStatusPending, user.Status)
	assert.True(t, user.HasRole(domain.RoleManager))
	assert.False(t, user.LoginAllowed())
	assert.True(t, user.CheckPassword("s3cret"))
	assert.NotEqual(t, "s3cret", user.Password)

	_, err = svc.Register(context.Background(), "an", "other", "Someone Else", "")
	assert.ErrorIs(t, err, errors.ErrUsernameTaken)
}

func TestActivateUser(t *testing.T) {
	repo := newFakeRepo()
	repo.users["u1"] = userFixture(t, domain.UserStatusPending, true)

	svc := newTestService(t, repo)

	user, err := svc.ActivateUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, user.LoginAllowed())

	user, err = svc.DeactivateUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, user.LoginAllowed())

	_, err = svc.ActivateUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestCurrentUser(t *testing.T) {
	repo := newFakeRepo()
	repo.users["u1"] = userFixture(t, domain.UserStatusActive, true)

	svc := newTestService(t, repo)

	user, err := svc.CurrentUser(authContext("u1", "MANAGER"))
	require.NoError(t, err)
	assert.Equal(t, "an", user.Username)

	_, err = svc.CurrentUser(context.Background())
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	_, err = svc.CurrentUser(authContext("ghost", "MANAGER"))
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestBootstrapAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	svc.config.Admin = config.Admin{Username: "root", Password: "changeme", FullName: "Administrator"}

	require.NoError(t, svc.BootstrapAdmin(context.Background()))

	admin, err := repo.GetUserByUsername(context.Background(), "root")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.LoginAllowed())
	assert.True(t, admin.CheckPassword("changeme"))

	// a second call keeps the existing account untouched
	require.NoError(t, svc.BootstrapAdmin(context.Background()))
	again, err := repo.GetUserByUsername(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	assert.Equal(t, admin.Password, again.Password)
}

func TestBootstrapAdminSkipsWhenUnconfigured(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	require.NoError(t, svc.BootstrapAdmin(context.Background()))
	assert.Empty(t, repo.users)
}
