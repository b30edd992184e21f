package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrRoomNotFound is returned when a room is not found.
	ErrRoomNotFound = errors.New("room not found")
	// ErrReservationNotFound is returned when a reservation is not found.
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrMessageNotFound is returned when a contact message is not found.
	ErrMessageNotFound = errors.New("contact message not found")
	// ErrInvalidDateRange is returned when start date is not before end date.
	ErrInvalidDateRange = errors.New("start date must be before end date")
	// ErrRoomAlreadyBooked is returned when the requested range overlaps an
	// existing non-cancelled reservation.
	ErrRoomAlreadyBooked = errors.New("room already booked for the selected period")
	// ErrRoomUnavailable is returned when the room is not open for booking.
	ErrRoomUnavailable = errors.New("room is not available for booking")
	// ErrRoomHasReservations is returned when deleting a room that has reservations.
	ErrRoomHasReservations = errors.New("room has reservations and cannot be deleted")
	// ErrNotReservationOwner is returned when the acting user may not modify the reservation.
	ErrNotReservationOwner = errors.New("unauthorized")
	// ErrAlreadyReplied is returned when a contact message was already answered.
	ErrAlreadyReplied = errors.New("contact message already replied to")
	// ErrInvalidRating is returned when a review rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrRoomNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ROOM_NOT_FOUND")
	case ErrReservationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "RESERVATION_NOT_FOUND")
	case ErrMessageNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "MESSAGE_NOT_FOUND")
	case ErrInvalidDateRange:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATE_RANGE")
	case ErrRoomAlreadyBooked:
		return NewHTTPError(http.StatusConflict, err.Error(), "ROOM_ALREADY_BOOKED")
	case ErrRoomUnavailable:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ROOM_UNAVAILABLE")
	case ErrRoomHasReservations:
		return NewHTTPError(http.StatusConflict, err.Error(), "ROOM_HAS_RESERVATIONS")
	case ErrNotReservationOwner:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case ErrAlreadyReplied:
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_REPLIED")
	case ErrInvalidRating:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
