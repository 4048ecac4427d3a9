package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pampers23/admin-shoe/pkg/logger"
	"go.uber.org/zap"
)

// DashboardStats returns the four overview cards
func (h *Handler) DashboardStats(c echo.Context) error {
	log := logger.FromEcho(c)

	cards, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		return errorResponse(c, log, err, "Failed to compute dashboard stats")
	}
	return c.JSON(http.StatusOK, cards)
}

// RecentProducts returns the newest products
func (h *Handler) RecentProducts(c echo.Context) error {
	log := logger.FromEcho(c)
	limit := intQuery(c, "limit", h.listing.RecentProducts)
	if limit < 1 {
		limit = h.listing.RecentProducts
	}

	products, err := h.dashboard.RecentProducts(c.Request().Context(), limit)
	if err != nil {
		return errorResponse(c, log, err, "Failed to retrieve recent products")
	}

	log.Info("Recent products retrieved", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// ListCategories returns the categories derived from the catalog
func (h *Handler) ListCategories(c echo.Context) error {
	log := logger.FromEcho(c)

	categories, err := h.dashboard.Categories(c.Request().Context())
	if err != nil {
		return errorResponse(c, log, err, "Failed to retrieve categories")
	}

	log.Info("Categories retrieved", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}
