package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paintcompare/marketplace-api/internal/api/metrics"
	"github.com/paintcompare/marketplace-api/internal/core/domain"
	"github.com/paintcompare/marketplace-api/internal/core/ports"
)

type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type placeOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed shipped delivered cancelled"`
}

// Place creates an order for the authenticated customer.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      placeOrderRequest  true  "Order lines"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Router       /orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ports.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orders.Place(c.Request().Context(), identity, items)
	if err != nil {
		return err
	}
	metrics.OrdersPlacedTotal.Inc()
	return c.JSON(http.StatusCreated, order)
}

// List returns the authenticated user's orders.
//
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}  domain.Order
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	limit, offset := pageParams(c)
	orders, err := h.orders.ListForUser(c.Request().Context(), identity, limit, offset)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// Get returns one order, owner or admin only.
//
// @Summary      Track an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	order, err := h.orders.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus advances an order through its lifecycle (back-office).
//
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Order ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Order
// @Failure      422   {object}  map[string]string
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
