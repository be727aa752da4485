package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/permission"
	"github.com/tpanh/rentd/internal/service"
)

func NewUtilityReadingHandlers(service *service.Service) *UtilityReadingHandlers {
	return &UtilityReadingHandlers{service: service}
}

type UtilityReadingHandlers struct {
	service *service.Service
}

type readingRequest struct {
	Month         string `json:"month"`
	ElectricIndex *int   `json:"electricIndex"`
	WaterIndex    *int   `json:"waterIndex"`
}

type readingResponse struct {
	ID            uint64 `json:"id"`
	RoomID        uint64 `json:"roomId"`
	Month         string `json:"month"`
	ElectricIndex *int   `json:"electricIndex,omitempty"`
	WaterIndex    *int   `json:"waterIndex,omitempty"`
}

func toReadingResponse(r *domain.UtilityReading) readingResponse {
	return readingResponse{
		ID:            r.ID,
		RoomID:        r.RoomID,
		Month:         r.Month,
		ElectricIndex: r.ElectricIndex,
		WaterIndex:    r.WaterIndex,
	}
}

func (h *UtilityReadingHandlers) Record(c echo.Context) error {
	roomID, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	req := &readingRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	reading, err := h.service.RecordUtilityReading(c.Request().Context(), roomID, req.Month, req.ElectricIndex, req.WaterIndex)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toReadingResponse(reading))
}

func (h *UtilityReadingHandlers) Get(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	reading, err := h.service.GetUtilityReading(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toReadingResponse(reading))
}

func (h *UtilityReadingHandlers) ListByRoom(c echo.Context) error {
	roomID, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	readings, err := h.service.ListUtilityReadings(c.Request().Context(), roomID)
	if err != nil {
		return err
	}

	resp := make([]readingResponse, 0, len(readings))
	for i := range readings {
		resp = append(resp, toReadingResponse(&readings[i]))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *UtilityReadingHandlers) ListByBuilding(c echo.Context) error {
	buildingID, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	readings, err := h.service.ListBuildingUtilityReadings(c.Request().Context(), buildingID, c.QueryParam("month"))
	if err != nil {
		return err
	}

	resp := make([]readingResponse, 0, len(readings))
	for i := range readings {
		resp = append(resp, toReadingResponse(&readings[i]))
	}

	return c.JSON(http.StatusOK, resp)
}
