package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/permission"
	"github.com/tpanh/rentd/internal/service"
)

func NewTenantHandlers(service *service.Service) *TenantHandlers {
	return &TenantHandlers{service: service}
}

type TenantHandlers struct {
	service *service.Service
}

type tenantResponse struct {
	ID               uint64     `json:"id"`
	RoomID           uint64     `json:"roomId"`
	UserID           string     `json:"userId,omitempty"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone,omitempty"`
	Email            string     `json:"email,omitempty"`
	IsContractHolder bool       `json:"isContractHolder"`
	StartDate        time.Time  `json:"startDate"`
	ContractEndDate  *time.Time `json:"contractEndDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
}

func toTenantResponse(t *domain.Tenant) tenantResponse {
	return tenantResponse{
		ID:               t.ID,
		RoomID:           t.RoomID,
		UserID:           t.UserID,
		Name:             t.Name,
		Phone:            t.Phone,
		Email:            t.Email,
		IsContractHolder: t.IsContractHolder,
		StartDate:        t.StartDate,
		ContractEndDate:  t.ContractEndDate,
		EndDate:          t.EndDate,
	}
}

func (h *TenantHandlers) ListByRoom(c echo.Context) error {
	roomID, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	tenants, err := h.service.ListTenants(c.Request().Context(), roomID)
	if err != nil {
		return err
	}

	resp := make([]tenantResponse, 0, len(tenants))
	for i := range tenants {
		resp = append(resp, toTenantResponse(&tenants[i]))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *TenantHandlers) Get(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	tenant, err := h.service.GetTenant(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTenantResponse(tenant))
}

func (h *TenantHandlers) End(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	tenant, err := h.service.EndTenancy(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTenantResponse(tenant))
}
