package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/permission"
	"github.com/tpanh/rentd/internal/service"
)

func NewInvoiceHandlers(service *service.Service) *InvoiceHandlers {
	return &InvoiceHandlers{service: service}
}

type InvoiceHandlers struct {
	service *service.Service
}

type generateInvoicesRequest struct {
	Period string `json:"period"`
}

type payInvoiceRequest struct {
	Method string `json:"method"`
}

type invoiceResponse struct {
	ID          uint64    `json:"id"`
	RoomID      uint64    `json:"roomId"`
	TenantID    uint64    `json:"tenantId"`
	Period      string    `json:"period"`
	RoomPrice   int       `json:"roomPrice"`
	ElecAmount  int       `json:"elecAmount"`
	WaterAmount int       `json:"waterAmount"`
	TotalAmount int       `json:"totalAmount"`
	Status      string    `json:"status"`
	DueDate     time.Time `json:"dueDate"`
}

func toInvoiceResponse(i *domain.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:          i.ID,
		RoomID:      i.RoomID,
		TenantID:    i.TenantID,
		Period:      i.Period,
		RoomPrice:   i.RoomPrice,
		ElecAmount:  i.ElecAmount,
		WaterAmount: i.WaterAmount,
		TotalAmount: i.TotalAmount,
		Status:      string(i.Status),
		DueDate:     i.DueDate,
	}
}

func toInvoiceResponses(invoices []domain.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, 0, len(invoices))
	for i := range invoices {
		resp = append(resp, toInvoiceResponse(&invoices[i]))
	}
	return resp
}

// Generate creates the invoices of a building for one billing period.
func (h *InvoiceHandlers) Generate(c echo.Context) error {
	buildingID, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	req := &generateInvoicesRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	created, err := h.service.GenerateInvoices(c.Request().Context(), buildingID, req.Period)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toInvoiceResponses(created))
}

func (h *InvoiceHandlers) ListByBuilding(c echo.Context) error {
	buildingID, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	period := c.QueryParam("period")
	status := domain.InvoiceStatus(c.QueryParam("status"))

	invoices, err := h.service.ListInvoices(c.Request().Context(), buildingID, period, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toInvoiceResponses(invoices))
}

func (h *InvoiceHandlers) Get(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	invoice, err := h.service.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}

func (h *InvoiceHandlers) Pay(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	req := &payInvoiceRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}
	if req.Method == "" {
		req.Method = "MANUAL"
	}

	invoice, err := h.service.PayInvoice(c.Request().Context(), id, req.Method)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}

func (h *InvoiceHandlers) Send(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	invoice, err := h.service.SendInvoice(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}
