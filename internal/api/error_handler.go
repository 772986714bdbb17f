package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mediashelf/media-tracker/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Typed domain errors carrying extra detail.
	var conflict *domain.SignupConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict, conflict.Error()
	}
	var dup *domain.DuplicateFieldError
	if errors.As(err, &dup) {
		return http.StatusConflict, dup.Error()
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	// login answers 404 for both unknown email and wrong password
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrInvalidVerificationCode),
		errors.Is(err, domain.ErrInvalidResetCode),
		errors.Is(err, domain.ErrListNotFound),
		errors.Is(err, domain.ErrDestinationNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrNotInList):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrAccountDeleted),
		errors.Is(err, domain.ErrNotVerified),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrWrongPassword):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrDuplicateListName),
		errors.Is(err, domain.ErrAlreadyInList):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrUnknownItemType),
		errors.Is(err, domain.ErrItemTypeMismatch),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrOldPasswordRequired),
		errors.Is(err, domain.ErrMixedImageSources):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
