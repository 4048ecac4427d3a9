package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pampers23/admin-shoe/internal/service"
	"github.com/pampers23/admin-shoe/pkg/logger"
	"go.uber.org/zap"
)

// ListProducts handles retrieving products with search, category and paging
func (h *Handler) ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	q := service.ProductQuery{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", h.listing.ProductsPageSize),
	}
	log.Info("Listing products",
		zap.String("search", q.Search),
		zap.String("category", q.Category),
		zap.Int("page", q.Page))

	page, err := h.catalog.List(c.Request().Context(), q)
	if err != nil {
		return errorResponse(c, log, err, "Failed to retrieve products")
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(page.Products)), zap.Int("total", page.Total))
	return c.JSON(http.StatusOK, page)
}

// GetProduct handles retrieving a single product by ID
func (h *Handler) GetProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, ok := parseProductID(c)
	if !ok {
		log.Warn("Invalid product ID", zap.String("product_id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product ID"})
	}

	product, err := h.catalog.Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, log, err, "Failed to retrieve product")
	}

	log.Info("Product retrieved successfully", zap.Uint("product_id", id), zap.String("product_sku", product.SKU))
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func (h *Handler) CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)
	log.Info("Creating new product")

	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product, err := h.catalog.Create(c.Request().Context(), req)
	if err != nil {
		return errorResponse(c, log, err, "Failed to create product")
	}

	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("sku", product.SKU))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct handles replacing an existing product
func (h *Handler) UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, ok := parseProductID(c)
	if !ok {
		log.Warn("Invalid product ID", zap.String("product_id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product ID"})
	}

	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product, err := h.catalog.Update(c.Request().Context(), id, req)
	if err != nil {
		return errorResponse(c, log, err, "Failed to update product")
	}

	log.Info("Product updated successfully", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct handles removing a product
func (h *Handler) DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, ok := parseProductID(c)
	if !ok {
		log.Warn("Invalid product ID", zap.String("product_id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product ID"})
	}

	if err := h.catalog.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, log, err, "Failed to delete product")
	}

	log.Info("Product deleted successfully", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}
