package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/mapping"
	"github.com/tpanh/rentd/internal/permission"
	"github.com/tpanh/rentd/internal/service"
)

func NewRoomHandlers(service *service.Service) *RoomHandlers {
	return &RoomHandlers{service: service}
}

type RoomHandlers struct {
	service *service.Service
}

type roomRequest struct {
	RoomNo string `json:"roomNo"`
	Price  int    `json:"price"`
	Status string `json:"status"`
}

type roomResponse struct {
	ID         uint64 `json:"id"`
	BuildingID uint64 `json:"buildingId"`
	RoomNo     string `json:"roomNo"`
	Price      int    `json:"price"`
	Status     string `json:"status"`
}

func toRoomResponse(r *domain.Room) (roomResponse, error) {
	var resp roomResponse
	err := mapping.CopyViaJson(r, &resp)
	return resp, err
}

func (h *RoomHandlers) Create(c echo.Context) error {
	buildingID, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	req := &roomRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	var room domain.Room
	if err := mapping.CopyViaJson(req, &room); err != nil {
		return logError(err)
	}

	created, err := h.service.CreateRoom(c.Request().Context(), buildingID, &room)
	if err != nil {
		return err
	}

	resp, err := toRoomResponse(created)
	if err != nil {
		return logError(err)
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *RoomHandlers) List(c echo.Context) error {
	buildingID, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	rooms, err := h.service.ListRooms(c.Request().Context(), buildingID)
	if err != nil {
		return err
	}

	resp := make([]roomResponse, 0, len(rooms))
	for i := range rooms {
		r, err := toRoomResponse(&rooms[i])
		if err != nil {
			return logError(err)
		}
		resp = append(resp, r)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *RoomHandlers) Get(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	room, err := h.service.GetRoom(c.Request().Context(), id)
	if err != nil {
		return err
	}

	resp, err := toRoomResponse(room)
	if err != nil {
		return logError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *RoomHandlers) Update(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	req := &roomRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	var update domain.Room
	if err := mapping.CopyViaJson(req, &update); err != nil {
		return logError(err)
	}

	room, err := h.service.UpdateRoom(c.Request().Context(), id, &update)
	if err != nil {
		return err
	}

	resp, err := toRoomResponse(room)
	if err != nil {
		return logError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *RoomHandlers) Delete(c echo.Context) error {
	id, err := permission.ParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteRoom(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
