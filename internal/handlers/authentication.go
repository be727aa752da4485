package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/service"
)

func NewAuthHandlers(service *service.Service) *AuthHandlers {
	return &AuthHandlers{service: service}
}

type AuthHandlers struct {
	service *service.Service
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type userResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	Status   string   `json:"status"`
	Active   bool     `json:"active"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Roles:    u.RoleNames(),
		Status:   string(u.Status),
		Active:   u.Active,
	}
}

func (h *AuthHandlers) Login(c echo.Context) error {
	req := &loginRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	signed, user, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: signed, User: toUserResponse(user)})
}

func (h *AuthHandlers) Register(c echo.Context) error {
	req := &registerRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), req.Username, req.Password, req.FullName, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active    bool       `json:"active"`
	UserID    string     `json:"userId,omitempty"`
	Roles     []string   `json:"roles,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Introspect reports whether a presented token is currently valid. An
// invalid token is a negative answer, never an error.
func (h *AuthHandlers) Introspect(c echo.Context) error {
	req := &introspectRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	payload := h.service.IntrospectToken(req.Token)
	if payload == nil {
		return c.JSON(http.StatusOK, introspectResponse{Active: false})
	}

	return c.JSON(http.StatusOK, introspectResponse{
		Active:    true,
		UserID:    payload.UserID,
		Roles:     payload.Roles,
		ExpiresAt: &payload.ExpiresAt,
	})
}

func (h *AuthHandlers) Me(c echo.Context) error {
	user, err := h.service.CurrentUser(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}
