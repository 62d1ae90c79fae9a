package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vincentputra/pos-app-new/internal/cart"
	"github.com/vincentputra/pos-app-new/internal/events"
	"github.com/vincentputra/pos-app-new/internal/logging"
	"github.com/vincentputra/pos-app-new/internal/posapi"
)

type CartHandler struct {
	Carts    *cart.Registry
	Producer *events.Producer
}

type cartView struct {
	Items    []cart.Item `json:"items"`
	Subtotal float64     `json:"subtotal"`
}

func (h *CartHandler) view(sid string) cartView {
	c := h.Carts.Get(sid)
	return cartView{Items: c.Items(), Subtotal: c.Subtotal()}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.view(sid))
}

// AddItem reports stock-ceiling violations in the outcome body, not as an
// HTTP error; the register UI branches on outcome.status.
func (h *CartHandler) AddItem(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}

	var req struct {
		ID         int          `json:"id"`
		Name       string       `json:"name"`
		Price      posapi.Price `json:"price"`
		TotalStock *int         `json:"total_stock"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome := h.Carts.Get(sid).AddItem(cart.Product{
		ID:         req.ID,
		Name:       req.Name,
		Price:      float64(req.Price),
		TotalStock: req.TotalStock,
	})

	if outcome.Status == cart.StatusSuccess {
		ctx := c.Request().Context()
		if err := h.Producer.Publish(ctx, events.TopicCartEvents, sid, map[string]any{
			"type":       "cart_item_added",
			"product_id": req.ID,
		}); err != nil {
			logging.FromContext(ctx).Warn("failed to publish cart event", "error", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"outcome": outcome,
		"cart":    h.view(sid),
	})
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome := h.Carts.Get(sid).UpdateQuantity(id, req.Quantity)
	return c.JSON(http.StatusOK, echo.Map{
		"outcome": outcome,
		"cart":    h.view(sid),
	})
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	h.Carts.Get(sid).RemoveItem(id)

	ctx := c.Request().Context()
	if err := h.Producer.Publish(ctx, events.TopicCartEvents, sid, map[string]any{
		"type":       "cart_item_removed",
		"product_id": id,
	}); err != nil {
		logging.FromContext(ctx).Warn("failed to publish cart event", "error", err)
	}

	return c.JSON(http.StatusOK, h.view(sid))
}

func (h *CartHandler) Reset(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	h.Carts.Get(sid).Reset()
	return c.JSON(http.StatusOK, h.view(sid))
}
