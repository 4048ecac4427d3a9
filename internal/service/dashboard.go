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
	"golang.org/x/sync/errgroup"
)

// Query cache entities
const (
	EntityStats          = "stats"
	EntityRecentProducts = "recent-products"
	EntityCategories     = "categories"
	EntityProducts       = "products"
	EntityProduct        = "product"
	EntityOrders         = "orders"
	EntityOrderProducts  = "order-products"
)

// productEntities are dropped whenever a product changes
var productEntities = []string{
	EntityProducts,
	EntityProduct,
	EntityRecentProducts,
	EntityCategories,
	EntityStats,
	EntityOrderProducts,
}

// DashboardService computes the overview page
type DashboardService struct {
	store repository.Store
	cache cache.Cache
	ttl   time.Duration
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store repository.Store, c cache.Cache, ttl time.Duration) *DashboardService {
	return &DashboardService{store: store, cache: c, ttl: ttl}
}

// Stats returns the four overview cards. The counts are fetched concurrently
// and the first failure aborts the whole computation.
func (s *DashboardService) Stats(ctx context.Context) ([]StatCard, error) {
	log := logger.FromContext(ctx).Named("dashboard")

	return cache.Fetch(ctx, s.cache, log, cache.NewKey(EntityStats), s.ttl, func(ctx context.Context) ([]StatCard, error) {
		var in StatsInput
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			n, err := s.store.CountProducts(gctx)
			in.ProductCount = n
			return err
		})
		g.Go(func() error {
			n, err := s.store.CountCustomers(gctx)
			in.CustomerCount = n
			return err
		})
		g.Go(func() error {
			orders, err := s.store.OrderTotals(gctx)
			in.Orders = orders
			return err
		})
		if err := g.Wait(); err != nil {
			prometheus.RecordStatsComputation("error")
			log.Error("Failed to compute dashboard stats", zap.Error(err))
			return nil, err
		}

		prometheus.RecordStatsComputation("success")
		log.Debug("Dashboard stats computed",
			zap.Int64("products", in.ProductCount),
			zap.Int64("customers", in.CustomerCount),
			zap.Int("orders", len(in.Orders)))
		return ComputeStats(in), nil
	})
}

// Categories groups every product by normalized category
func (s *DashboardService) Categories(ctx context.Context) ([]model.Category, error) {
	log := logger.FromContext(ctx).Named("dashboard")

	return cache.Fetch(ctx, s.cache, log, cache.NewKey(EntityCategories), s.ttl, func(ctx context.Context) ([]model.Category, error) {
		categories, err := s.store.ProductCategories(ctx)
		if err != nil {
			return nil, err
		}
		return ComputeCategories(categories), nil
	})
}

// RecentProducts returns the newest products, at most limit
func (s *DashboardService) RecentProducts(ctx context.Context, limit int) ([]model.Product, error) {
	log := logger.FromContext(ctx).Named("dashboard")
	key := cache.NewKey(EntityRecentProducts, strconv.Itoa(limit))

	return cache.Fetch(ctx, s.cache, log, key, s.ttl, func(ctx context.Context) ([]model.Product, error) {
		return s.store.RecentProducts(ctx, limit)
	})
}
