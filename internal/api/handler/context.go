package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediashelf/media-tracker/internal/core/domain"
)

// currentUser extracts the account loaded by the Auth middleware. Its
// absence means the route was wired without the middleware; fail the
// request rather than proceed unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get("user").(*domain.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
