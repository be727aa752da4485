package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tpanh/rentd/internal/auth"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/permission"
	"github.com/tpanh/rentd/internal/service"
)

func NewInvitationHandlers(service *service.Service) *InvitationHandlers {
	return &InvitationHandlers{service: service}
}

type InvitationHandlers struct {
	service *service.Service
}

type inviteRequest struct {
	Email            string     `json:"email"`
	IsContractHolder bool       `json:"isContractHolder"`
	ContractEndDate  *time.Time `json:"contractEndDate"`
}

type acceptInvitationRequest struct {
	Token string `json:"token"`
}

type invitationResponse struct {
	ID               uint64     `json:"id"`
	RoomID           uint64     `json:"roomId"`
	Email            string     `json:"email"`
	IsContractHolder bool       `json:"isContractHolder"`
	ContractEndDate  *time.Time `json:"contractEndDate,omitempty"`
	Status           string     `json:"status"`
	ExpiredAt        time.Time  `json:"expiredAt"`
}

func toInvitationResponse(i *domain.TenantInvitation) invitationResponse {
	return invitationResponse{
		ID:               i.ID,
		RoomID:           i.RoomID,
		Email:            i.Email,
		IsContractHolder: i.IsContractHolder,
		ContractEndDate:  i.ContractEndDate,
		Status:           string(i.Status),
		ExpiredAt:        i.ExpiredAt,
	}
}

// Invite creates an invitation for the room in the path.
func (h *InvitationHandlers) Invite(c echo.Context) error {
	roomID, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	req := &inviteRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	invitedBy, err := auth.CurrentUserID(c.Request().Context())
	if err != nil {
		return err
	}

	invitation, err := h.service.InviteTenant(c.Request().Context(), roomID, req.Email, req.IsContractHolder, req.ContractEndDate, invitedBy)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toInvitationResponse(invitation))
}

// Accept claims an invitation by its token. The token may arrive either in
// the body or as a query parameter, the mailed link uses the latter.
func (h *InvitationHandlers) Accept(c echo.Context) error {
	req := &acceptInvitationRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}
	if req.Token == "" {
		req.Token = c.QueryParam("token")
	}

	tenant, err := h.service.AcceptInvitation(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTenantResponse(tenant))
}

func (h *InvitationHandlers) Cancel(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	invitation, err := h.service.CancelInvitation(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toInvitationResponse(invitation))
}
