package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediashelf/media-tracker/internal/api/metrics"
	"github.com/mediashelf/media-tracker/internal/core/ports"
)

type ListHandler struct {
	listService ports.ListService
}

func NewListHandler(listService ports.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// Lists returns all of the caller's lists without catalog details.
func (h *ListHandler) Lists(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.listService.Lists(c.Request().Context(), user))
}

// CreateList adds an empty typed list.
func (h *ListHandler) CreateList(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.listService.CreateList(c.Request().Context(), user, ports.CreateListInput{
		Name:     req.Name,
		ItemType: req.ItemType,
	})
	if err != nil {
		return err
	}

	metrics.ListMutationsTotal.WithLabelValues("create_list").Inc()
	return c.JSON(http.StatusCreated, view)
}

// GetList returns one list; ?expand=items embeds the catalog entries.
func (h *ListHandler) GetList(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	dereference := c.QueryParam("expand") == "items"
	view, err := h.listService.GetList(c.Request().Context(), user, c.Param("name"), dereference)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// RenameList changes the list's name.
func (h *ListHandler) RenameList(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req renameListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.listService.RenameList(c.Request().Context(), user, c.Param("name"), req.Name)
	if err != nil {
		return err
	}

	metrics.ListMutationsTotal.WithLabelValues("rename_list").Inc()
	return c.JSON(http.StatusOK, view)
}

// DeleteList removes the list with all its memberships.
func (h *ListHandler) DeleteList(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.listService.DeleteList(c.Request().Context(), user, c.Param("name")); err != nil {
		return err
	}

	metrics.ListMutationsTotal.WithLabelValues("delete_list").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "list deleted"})
}

// AddItem adds a catalog item to the list, optionally rated.
//
// @Summary      Add an item to a list
// @Tags         lists
// @Accept       json
// @Produce      json
// @Param        name  path      string              true  "List name"
// @Param        body  body      addListItemRequest  true  "Item reference and optional rating"
// @Success      201   {object}  ports.ListView
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /me/lists/{name}/items [post]
func (h *ListHandler) AddItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req addListItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.listService.AddItem(c.Request().Context(), user, ports.AddListItemInput{
		ListName: c.Param("name"),
		ItemID:   req.Item,
		Rating:   req.Rating,
	})
	if err != nil {
		return err
	}

	metrics.ListMutationsTotal.WithLabelValues("add_item").Inc()
	return c.JSON(http.StatusCreated, view)
}

// UpdateItem changes the membership's rating, moves it to another
// list, or both in one call.
//
// @Summary      Update or move a list item
// @Tags         lists
// @Accept       json
// @Produce      json
// @Param        name  path      string                 true  "List name"
// @Param        id    path      string                 true  "Item id"
// @Param        body  body      updateListItemRequest  true  "New rating and/or destination list"
// @Success      200   {object}  ports.ListView
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /me/lists/{name}/items/{id} [patch]
func (h *ListHandler) UpdateItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateListItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.listService.UpdateItem(c.Request().Context(), user, ports.UpdateListItemInput{
		ListName:    c.Param("name"),
		ItemID:      c.Param("id"),
		Rating:      parseLenientRating(req.Rating),
		NewListName: req.List,
	})
	if err != nil {
		return err
	}

	metrics.ListMutationsTotal.WithLabelValues("update_item").Inc()
	return c.JSON(http.StatusOK, view)
}

// RemoveItem detaches the item from the list.
func (h *ListHandler) RemoveItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	view, err := h.listService.RemoveItem(c.Request().Context(), user, c.Param("name"), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.ListMutationsTotal.WithLabelValues("remove_item").Inc()
	return c.JSON(http.StatusOK, view)
}
