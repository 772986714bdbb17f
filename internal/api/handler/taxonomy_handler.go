package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediashelf/media-tracker/internal/core/ports"
)

type TaxonomyHandler struct {
	itemService ports.ItemService
}

func NewTaxonomyHandler(itemService ports.ItemService) *TaxonomyHandler {
	return &TaxonomyHandler{itemService: itemService}
}

func (h *TaxonomyHandler) ItemTypes(c echo.Context) error {
	types, err := h.itemService.ItemTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types)
}

func (h *TaxonomyHandler) Tags(c echo.Context) error {
	tags, err := h.itemService.Tags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}
