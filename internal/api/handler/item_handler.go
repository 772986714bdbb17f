package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediashelf/media-tracker/internal/api/metrics"
	"github.com/mediashelf/media-tracker/internal/core/ports"
)

type ItemHandler struct {
	itemService ports.ItemService
}

func NewItemHandler(itemService ports.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create inserts a catalog item. Accepts JSON with image urls, or a
// multipart form with uploaded image files, not both.
//
// @Summary      Create a catalog item
// @Tags         items
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        body  body      createItemRequest  true  "Item details"
// @Success      201   {object}  domain.Item
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	var req createItemRequest
	var uploads []ports.ImageUpload

	if isMultipart(c) {
		var err error
		if uploads, err = formUploads(c); err != nil {
			return err
		}
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.itemService.Create(c.Request().Context(), ports.CreateItemInput{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		Tags:        req.Tags,
		Meta:        req.Meta,
		ImageURLs:   req.Images,
		Uploads:     uploads,
	})
	if err != nil {
		return err
	}

	metrics.ItemsCreatedTotal.WithLabelValues(item.Type).Inc()
	return c.JSON(http.StatusCreated, item)
}

// GetByID returns the item, annotated with the name of the caller's
// list containing it.
func (h *ItemHandler) GetByID(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	item, err := h.itemService.GetByID(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// GetBySlug resolves an item by its type and slug.
func (h *ItemHandler) GetBySlug(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	item, err := h.itemService.GetBySlug(c.Request().Context(), user, c.Param("type"), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Update applies partial changes; a new image set replaces the old.
func (h *ItemHandler) Update(c echo.Context) error {
	var req updateItemRequest
	var uploads []ports.ImageUpload

	if isMultipart(c) {
		var err error
		if uploads, err = formUploads(c); err != nil {
			return err
		}
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	item, err := h.itemService.Update(c.Request().Context(), c.Param("id"), ports.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		Tags:        req.Tags,
		Meta:        req.Meta,
		ImageURLs:   req.Images,
		Uploads:     uploads,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete removes the item and its stored images.
func (h *ItemHandler) Delete(c echo.Context) error {
	if err := h.itemService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "item deleted"})
}
