package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/service"
)

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest represents a review submission.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// ReviewResponse is a review joined with the reviewer's display name.
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Reviewer  string    `json:"reviewer"`
}

func toReviewResponse(review model.Review) ReviewResponse {
	reviewer := "Anonymous"
	if review.User != nil {
		reviewer = review.User.DisplayName()
	}
	return ReviewResponse{
		ID:        review.ID,
		RoomID:    review.RoomID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		Reviewer:  reviewer,
	}
}

// ListReviews godoc
// @Summary List a room's reviews
// @Tags reviews
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {array} ReviewResponse
// @Router /rooms/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusOK, []ReviewResponse{})
	}

	reviews, err := h.reviewService.ListByRoom(c.Request().Context(), roomID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, toReviewResponse(review))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateReview godoc
// @Summary Review a room
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body CreateReviewRequest true "Review data"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rooms/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrRoomNotFound.Error(), Code: "ROOM_NOT_FOUND",
		})
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.CreateReview(c.Request().Context(), roomID, user.ID, req.Rating, req.Comment)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, review)
}
