package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pampers23/admin-shoe/internal/repository"
	"github.com/pampers23/admin-shoe/internal/service"
	"github.com/pampers23/admin-shoe/pkg/config"
	"github.com/pampers23/admin-shoe/pkg/storage"
	"go.uber.org/zap"
)

// Handler serves the admin HTTP API
type Handler struct {
	store     repository.Store
	catalog   *service.CatalogService
	dashboard *service.DashboardService
	orders    *service.OrderService
	images    storage.ObjectStore
	listing   config.DashboardConfig
	now       func() time.Time
}

// New creates a handler over the given services
func New(
	store repository.Store,
	catalog *service.CatalogService,
	dashboard *service.DashboardService,
	orders *service.OrderService,
	images storage.ObjectStore,
	listing config.DashboardConfig,
) *Handler {
	return &Handler{
		store:     store,
		catalog:   catalog,
		dashboard: dashboard,
		orders:    orders,
		images:    images,
		listing:   listing,
		now:       time.Now,
	}
}

// Register mounts every route. The admin API is wrapped by auth.
func (h *Handler) Register(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", h.Health)
	e.POST("/products", h.CreateProduct)
	e.POST("/images", h.UploadImage)

	api := e.Group("/api", auth)
	api.GET("/dashboard/stats", h.DashboardStats)
	api.GET("/dashboard/recent-products", h.RecentProducts)
	api.GET("/categories", h.ListCategories)

	api.GET("/products", h.ListProducts)
	api.POST("/products", h.CreateProduct)
	api.GET("/products/:id", h.GetProduct)
	api.PUT("/products/:id", h.UpdateProduct)
	api.DELETE("/products/:id", h.DeleteProduct)

	api.GET("/orders", h.ListOrders)
	api.GET("/orders/summary", h.OrderSummary)
	api.GET("/orders/:id", h.GetOrder)
}

// errorResponse converts a service error into one JSON response. Every failure
// is logged here exactly once.
func errorResponse(c echo.Context, log *zap.Logger, err error, fallback string) error {
	if ve, ok := service.IsValidation(err); ok {
		log.Warn("Validation failed", zap.Any("fields", ve.Fields))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "Validation failed",
			"fields": ve.Fields,
		})
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Warn(fallback, zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Resource not found"})
	case errors.Is(err, repository.ErrConstraint):
		log.Warn(fallback, zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		log.Error(fallback, zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
	}
}

// intQuery parses an integer query parameter, falling back to def
func intQuery(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

const timeLayout = time.RFC3339

func parseProductID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
