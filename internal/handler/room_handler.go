package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/repository"
	"stayhub/internal/service"
)

// RoomHandler handles room catalogue endpoints.
type RoomHandler struct {
	roomService service.RoomService
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(roomService service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoomRequest represents a room creation request.
type CreateRoomRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       int64    `json:"price" validate:"gte=0"`
	Capacity    int      `json:"capacity" validate:"gte=1"`
	Location    string   `json:"location"`
	ImageURL    string   `json:"image_url"`
	Features    []string `json:"features"`
	IsAvailable *bool    `json:"is_available"`
}

// UpdateRoomRequest represents a partial room update; nil fields are left
// untouched.
type UpdateRoomRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *int64    `json:"price" validate:"omitempty,gte=0"`
	Capacity    *int      `json:"capacity" validate:"omitempty,gte=1"`
	Location    *string   `json:"location"`
	ImageURL    *string   `json:"image_url"`
	Features    *[]string `json:"features"`
	IsAvailable *bool     `json:"is_available"`
}

// ListRooms godoc
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Param minPrice query int false "Minimum nightly price in minor units"
// @Param maxPrice query int false "Maximum nightly price in minor units"
// @Param capacity query int false "Minimum capacity"
// @Success 200 {array} model.Room
// @Failure 400 {object} errors.ErrorResponse
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c echo.Context) error {
	var filters repository.RoomFilters
	var err error

	if filters.MinPrice, err = queryInt64(c, "minPrice"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid minPrice", Code: "INVALID_FILTER",
		})
	}
	if filters.MaxPrice, err = queryInt64(c, "maxPrice"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid maxPrice", Code: "INVALID_FILTER",
		})
	}
	capacity, err := queryInt64(c, "capacity")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid capacity", Code: "INVALID_FILTER",
		})
	}
	filters.Capacity = int(capacity)

	rooms, err := h.roomService.ListRooms(c.Request().Context(), filters)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rooms)
}

// GetRoom godoc
// @Summary Get a room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} model.Room
// @Failure 404 {object} errors.ErrorResponse
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrRoomNotFound.Error(), Code: "ROOM_NOT_FOUND",
		})
	}

	room, err := h.roomService.GetRoom(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, room)
}

// CreateRoom godoc
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRoomRequest true "Room data"
// @Success 201 {object} model.Room
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	features, err := json.Marshal(req.Features)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid features")
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	room := &model.Room{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Features:    features,
		IsAvailable: isAvailable,
	}
	if err := h.roomService.CreateRoom(c.Request().Context(), room); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom godoc
// @Summary Update a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body UpdateRoomRequest true "Fields to update"
// @Success 200 {object} model.Room
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rooms/{id} [put]
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrRoomNotFound.Error(), Code: "ROOM_NOT_FOUND",
		})
	}

	var req UpdateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var features []byte
	if req.Features != nil {
		if features, err = json.Marshal(*req.Features); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid features")
		}
	}

	room, err := h.roomService.UpdateRoom(c.Request().Context(), id, func(room *model.Room) {
		if req.Title != nil {
			room.Title = *req.Title
		}
		if req.Description != nil {
			room.Description = *req.Description
		}
		if req.Price != nil {
			room.Price = *req.Price
		}
		if req.Capacity != nil {
			room.Capacity = *req.Capacity
		}
		if req.Location != nil {
			room.Location = *req.Location
		}
		if req.ImageURL != nil {
			room.ImageURL = *req.ImageURL
		}
		if req.Features != nil {
			room.Features = features
		}
		if req.IsAvailable != nil {
			room.IsAvailable = *req.IsAvailable
		}
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom godoc
// @Summary Delete a room
// @Tags rooms
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrRoomNotFound.Error(), Code: "ROOM_NOT_FOUND",
		})
	}

	if err := h.roomService.DeleteRoom(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// queryInt64 parses an optional non-negative integer query parameter.
func queryInt64(c echo.Context, name string) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
