package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediashelf/media-tracker/internal/core/ports"
)

type AccountHandler struct {
	userService ports.UserService
}

func NewAccountHandler(userService ports.UserService) *AccountHandler {
	return &AccountHandler{userService: userService}
}

type updateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
	OldPassword *string `json:"old_password"`
}

type deleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// Me returns the authenticated account.
func (h *AccountHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe applies partial profile changes.
func (h *AccountHandler) UpdateMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.userService.UpdateProfile(c.Request().Context(), user, ports.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		OldPassword: req.OldPassword,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteMe soft-deletes the account after a password re-check.
func (h *AccountHandler) DeleteMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req deleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.DeleteAccount(c.Request().Context(), user, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
}
