package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/mapping"
	"github.com/tpanh/rentd/internal/permission"
	"github.com/tpanh/rentd/internal/service"
)

func NewBuildingHandlers(service *service.Service) *BuildingHandlers {
	return &BuildingHandlers{service: service}
}

type BuildingHandlers struct {
	service *service.Service
}

type buildingRequest struct {
	Name            string `json:"name"`
	OwnerName       string `json:"ownerName"`
	OwnerPhone      string `json:"ownerPhone"`
	ElecUnitPrice   int    `json:"elecUnitPrice"`
	WaterUnitPrice  int    `json:"waterUnitPrice"`
	WaterCalcMethod string `json:"waterCalcMethod"`
}

type buildingResponse struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	ManagerID       string `json:"managerId"`
	OwnerName       string `json:"ownerName"`
	OwnerPhone      string `json:"ownerPhone"`
	ElecUnitPrice   int    `json:"elecUnitPrice"`
	WaterUnitPrice  int    `json:"waterUnitPrice"`
	WaterCalcMethod string `json:"waterCalcMethod"`
}

func toBuildingResponse(b *domain.Building) (buildingResponse, error) {
	var resp buildingResponse
	err := mapping.CopyViaJson(b, &resp)
	return resp, err
}

func (h *BuildingHandlers) Create(c echo.Context) error {
	req := &buildingRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	var building domain.Building
	if err := mapping.CopyViaJson(req, &building); err != nil {
		return logError(err)
	}

	created, err := h.service.CreateBuilding(c.Request().Context(), &building)
	if err != nil {
		return err
	}

	resp, err := toBuildingResponse(created)
	if err != nil {
		return logError(err)
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *BuildingHandlers) List(c echo.Context) error {
	buildings, err := h.service.ListBuildings(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]buildingResponse, 0, len(buildings))
	for i := range buildings {
		r, err := toBuildingResponse(&buildings[i])
		if err != nil {
			return logError(err)
		}
		resp = append(resp, r)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *BuildingHandlers) Get(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	building, err := h.service.GetBuilding(c.Request().Context(), id)
	if err != nil {
		return err
	}

	resp, err := toBuildingResponse(building)
	if err != nil {
		return logError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *BuildingHandlers) Update(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	req := &buildingRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	var update domain.Building
	if err := mapping.CopyViaJson(req, &update); err != nil {
		return logError(err)
	}

	building, err := h.service.UpdateBuilding(c.Request().Context(), id, &update)
	if err != nil {
		return err
	}

	resp, err := toBuildingResponse(building)
	if err != nil {
		return logError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *BuildingHandlers) Delete(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteBuilding(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
