package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stayhub/internal/model"
)

// currentUserKey is where the auth middleware stores the resolved user.
const currentUserKey = "currentUser"

// SetCurrentUser stores the authenticated user on the request context.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the authenticated user, or an unauthorized error when
// the middleware did not resolve one.
func CurrentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(currentUserKey).(*model.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return user, nil
}
