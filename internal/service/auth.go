package service

import (
	"context"
	"strconv"

	"github.com/tpanh/rentd/internal/auth"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/errors"
	"github.com/tpanh/rentd/internal/token"
	"github.com/tpanh/rentd/internal/util"
)

// Login exchanges a username and password for a signed token. Every failure
// mode a caller could probe with renders the same invalid-credentials error;
// only a deactivated account is reported as such.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" {
		return "", nil, errors.ErrUsernameRequired
	}
	if password == "" {
		return "", nil, errors.ErrPasswordRequired
	}

	user, err := s.repository.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !user.CheckPassword(password) {
		return "", nil, errors.ErrInvalidCredentials
	}
	if !user.LoginAllowed() {
		return "", nil, errors.ErrUserInactive
	}

	signed, err := s.tokens.Generate(user.ID, user.RoleNames())
	if err != nil {
		return "", nil, err
	}

	return signed, user, nil
}

// Register creates a manager account in pending state. An administrator has
// to activate it before the first login.
func (s *Service) Register(ctx context.Context, username, password, fullName, email string) (*domain.User, error) {
	if username == "" {
		return nil, errors.ErrUsernameRequired
	}
	if password == "" {
		return nil, errors.ErrPasswordRequired
	}

	existing, err := s.repository.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrUsernameTaken
	}

	user := &domain.User{
		ID:       strconv.FormatUint(util.NextID(), 10),
		Username: username,
		FullName: fullName,
		Email:    email,
		Roles:    domain.RoleSet{domain.RoleManager},
		Status:   domain.UserStatusPending,
		Active:   true,
	}

	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.repository.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// IntrospectToken returns the payload of a valid token, or nil when the
// token is malformed, forged or expired.
func (s *Service) IntrospectToken(value string) *token.Payload {
	return s.tokens.ParseAndValidate(value)
}

// CurrentUser loads the account behind the request principal.
func (s *Service) CurrentUser(ctx context.Context) (*domain.User, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repository.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	return user, nil
}

func (s *Service) ActivateUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repository.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	user.Status = domain.UserStatusActive
	user.Active = true

	if err := s.repository.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) DeactivateUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repository.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	user.Active = false

	if err := s.repository.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) (domain.Users, error) {
	return s.repository.ListUsers(ctx)
}

// BootstrapAdmin makes sure the configured administrator account exists.
// Runs at startup, before the listeners come up.
func (s *Service) BootstrapAdmin(ctx context.Context) error {
	admin := s.config.Admin
	if admin.Username == "" || admin.Password == "" {
		s.logger.Debug("No admin account configured, skipping bootstrap")
		return nil
	}

	existing, err := s.repository.GetUserByUsername(ctx, admin.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	user := &domain.User{
		ID:       strconv.FormatUint(util.NextID(), 10),
		Username: admin.Username,
		FullName: admin.FullName,
		Roles:    domain.RoleSet{domain.RoleAdmin},
		Status:   domain.UserStatusActive,
		Active:   true,
	}

	if err := user.SetPassword(admin.Password); err != nil {
		return err
	}

	if err := s.repository.SaveUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Admin account created", "username", admin.Username)

	return nil
}
