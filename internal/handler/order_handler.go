package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pampers23/admin-shoe/internal/model"
	"github.com/pampers23/admin-shoe/internal/service"
	"github.com/pampers23/admin-shoe/pkg/logger"
	"go.uber.org/zap"
)

// ListOrders returns a filtered page of the order history
func (h *Handler) ListOrders(c echo.Context) error {
	log := logger.FromEcho(c)

	q := service.OrderQuery{
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", h.listing.OrdersPageSize),
	}
	if q.Status == "" {
		q.Status = service.StatusAll
	}
	if q.Status != service.StatusAll && !model.OrderStatus(q.Status).Valid() {
		log.Warn("Invalid status filter", zap.String("status", q.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid status filter"})
	}

	page, err := h.orders.List(c.Request().Context(), q)
	if err != nil {
		return errorResponse(c, log, err, "Failed to retrieve orders")
	}

	log.Info("Orders retrieved",
		zap.String("search", q.Search),
		zap.String("status", q.Status),
		zap.Int("count", len(page.Orders)),
		zap.Int("total", page.Total))
	return c.JSON(http.StatusOK, page)
}

// OrderSummary returns the total, pending and delivered counts
func (h *Handler) OrderSummary(c echo.Context) error {
	log := logger.FromEcho(c)

	summary, err := h.orders.Summary(c.Request().Context())
	if err != nil {
		return errorResponse(c, log, err, "Failed to summarize orders")
	}
	return c.JSON(http.StatusOK, summary)
}

// GetOrder returns the denormalized view of one order
func (h *Handler) GetOrder(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	view, err := h.orders.View(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, log, err, "Failed to retrieve order")
	}

	log.Info("Order retrieved", zap.String("order_id", id), zap.Int("items", len(view.Items)))
	return c.JSON(http.StatusOK, view)
}
