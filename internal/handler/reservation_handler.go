package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stayhub/internal/errors"
	"stayhub/internal/service"
)

// ReservationHandler handles reservation endpoints.
type ReservationHandler struct {
	reservationService service.ReservationService
}

// NewReservationHandler creates a new reservation handler.
func NewReservationHandler(reservationService service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// CreateReservationRequest represents a booking request. Dates are ISO-8601
// strings; date-only values are accepted and read as midnight UTC.
type CreateReservationRequest struct {
	RoomID    string `json:"room_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// ListReservations godoc
// @Summary List the authenticated user's reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Reservation
// @Failure 401 {object} errors.ErrorResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservationService.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reservations)
}

// CreateReservation godoc
// @Summary Book a room
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReservationRequest true "Booking data"
// @Success 201 {object} model.Reservation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid room ID", Code: "INVALID_UUID",
		})
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid start date", Code: "INVALID_DATE",
		})
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid end date", Code: "INVALID_DATE",
		})
	}

	reservation, err := h.reservationService.Reserve(c.Request().Context(), roomID, user.ID, start, end)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, reservation)
}

// CancelReservation godoc
// @Summary Cancel a reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} model.Reservation
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reservations/{id}/cancel [patch]
func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrReservationNotFound.Error(), Code: "RESERVATION_NOT_FOUND",
		})
	}

	reservation, err := h.reservationService.Cancel(c.Request().Context(), id, user)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reservation)
}

// parseDate accepts RFC 3339 date-times and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
