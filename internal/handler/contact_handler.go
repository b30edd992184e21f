package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/service"
)

// ContactHandler handles contact message endpoints.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// CreateContactRequest represents a visitor enquiry.
type CreateContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ReplyRequest represents an admin reply to an enquiry.
type ReplyRequest struct {
	ReplyMessage string `json:"reply_message" validate:"required"`
}

// CreateMessage godoc
// @Summary Submit a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body CreateContactRequest true "Message data"
// @Success 201 {object} model.ContactMessage
// @Failure 400 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) CreateMessage(c echo.Context) error {
	var req CreateContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.contactService.CreateMessage(c.Request().Context(), message); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, message)
}

// ListByEmail godoc
// @Summary List contact messages submitted under an email
// @Tags contact
// @Produce json
// @Param email query string true "Email address"
// @Success 200 {array} model.ContactMessage
// @Failure 400 {object} errors.ErrorResponse
// @Router /contact [get]
func (h *ContactHandler) ListByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "email is required", Code: "EMAIL_REQUIRED",
		})
	}

	messages, err := h.contactService.ListByEmail(c.Request().Context(), email)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, messages)
}

// ListMessages godoc
// @Summary List all contact messages
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ContactMessage
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/contact-messages [get]
func (h *ContactHandler) ListMessages(c echo.Context) error {
	messages, err := h.contactService.ListMessages(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, messages)
}

// Reply godoc
// @Summary Reply to a contact message
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Param request body ReplyRequest true "Reply data"
// @Success 200 {object} model.ContactMessage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/contact-messages/{id}/reply [post]
func (h *ContactHandler) Reply(c echo.Context) error {
	admin, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrMessageNotFound.Error(), Code: "MESSAGE_NOT_FOUND",
		})
	}

	var req ReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.contactService.Reply(c.Request().Context(), id, req.ReplyMessage, admin)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, message)
}
