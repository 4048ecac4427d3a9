package service

import (
	"context"
	"strconv"
	"time"

	"github.com/pampers23/admin-shoe/internal/model"
	"github.com/pampers23/admin-shoe/internal/repository"
	"github.com/pampers23/admin-shoe/pkg/cache"
	"github.com/pampers23/admin-shoe/pkg/logger"
	"github.com/pampers23/admin-shoe/prometheus"
	"go.uber.org/zap"
)

// ProductQuery filters and pages the product listing
type ProductQuery struct {
	Search   string
	Category string
	Page     int
	PageSize int
}

// ProductPage is one page of the product listing
type ProductPage struct {
	Products   []ProductRow `json:"products"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

// ProductRow is a product with its stock badge
type ProductRow struct {
	model.Product
	StockStatus string `json:"stock_status"`
}

// CatalogService manages products
type CatalogService struct {
	store repository.Store
	cache cache.Cache
	ttl   time.Duration
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store repository.Store, c cache.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{store: store, cache: c, ttl: ttl}
}

func (s *CatalogService) allProducts(ctx context.Context, log *zap.Logger) ([]model.Product, error) {
	return cache.Fetch(ctx, s.cache, log, cache.NewKey(EntityProducts), s.ttl, s.store.ListProducts)
}

// List filters the catalog in memory and returns the requested page
func (s *CatalogService) List(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	log := logger.FromContext(ctx).Named("catalog")

	products, err := s.allProducts(ctx, log)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return nil, err
	}

	filtered := FilterProducts(products, q.Search, q.Category)
	page := Paginate(filtered, q.Page, q.PageSize)

	rows := make([]ProductRow, 0, len(page))
	for _, p := range page {
		rows = append(rows, ProductRow{Product: p, StockStatus: model.StockStatus(p.Stock)})
	}

	return &ProductPage{
		Products:   rows,
		Total:      len(filtered),
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: TotalPages(len(filtered), q.PageSize),
	}, nil
}

// Get returns a single product
func (s *CatalogService) Get(ctx context.Context, id uint) (*model.Product, error) {
	log := logger.FromContext(ctx).Named("catalog")
	key := cache.NewKey(EntityProduct, strconv.FormatUint(uint64(id), 10))

	product, err := cache.Fetch(ctx, s.cache, log, key, s.ttl, func(ctx context.Context) (model.Product, error) {
		p, err := s.store.GetProduct(ctx, id)
		if err != nil {
			return model.Product{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create validates the input and inserts a new product
func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	log := logger.FromContext(ctx).Named("catalog")

	if err := in.Validate(); err != nil {
		log.Warn("Rejected product input", zap.Error(err))
		return nil, err
	}

	var product model.Product
	in.Apply(&product)
	if err := s.store.CreateProduct(ctx, &product); err != nil {
		log.Error("Failed to insert product", zap.String("sku", product.SKU), zap.Error(err))
		return nil, err
	}

	prometheus.RecordProductOperation("create")
	cache.Invalidate(ctx, s.cache, log, productEntities...)
	log.Info("Product created", zap.Uint("product_id", product.ID), zap.String("sku", product.SKU))
	return &product, nil
}

// Update replaces every editable field of an existing product
func (s *CatalogService) Update(ctx context.Context, id uint, in ProductInput) (*model.Product, error) {
	log := logger.FromContext(ctx).Named("catalog")

	if err := in.Validate(); err != nil {
		log.Warn("Rejected product input", zap.Uint("product_id", id), zap.Error(err))
		return nil, err
	}

	product := model.Product{ID: id}
	in.Apply(&product)
	if err := s.store.UpdateProduct(ctx, &product); err != nil {
		log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return nil, err
	}

	prometheus.RecordProductOperation("update")
	cache.Invalidate(ctx, s.cache, log, productEntities...)
	log.Info("Product updated", zap.Uint("product_id", id))
	return &product, nil
}

// Delete removes a product
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	log := logger.FromContext(ctx).Named("catalog")

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return err
	}

	prometheus.RecordProductOperation("delete")
	cache.Invalidate(ctx, s.cache, log, productEntities...)
	log.Info("Product deleted", zap.Uint("product_id", id))
	return nil
}
