package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tpanh/rentd/internal/service"
)

func NewUserHandlers(service *service.Service) *UserHandlers {
	return &UserHandlers{service: service}
}

type UserHandlers struct {
	service *service.Service
}

func (h *UserHandlers) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandlers) Activate(c echo.Context) error {
	user, err := h.service.ActivateUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandlers) Deactivate(c echo.Context) error {
	user, err := h.service.DeactivateUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}
