package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pampers23/admin-shoe/internal/model"
	"github.com/pampers23/admin-shoe/internal/repository"
	"github.com/pampers23/admin-shoe/pkg/cache"
	"github.com/pampers23/admin-shoe/pkg/logger"
	"github.com/pampers23/admin-shoe/prometheus"
	"go.uber.org/zap"
)

// OrderQuery filters and pages the order history
type OrderQuery struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// OrderPage is one page of the order history
type OrderPage struct {
	Orders     []OrderRow `json:"orders"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// OrderSummary backs the cards on the orders page
type OrderSummary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Delivered int `json:"delivered"`
}

// OrderService serves order history and order details
type OrderService struct {
	store repository.Store
	cache cache.Cache
	ttl   time.Duration
}

// NewOrderService creates a new order service
func NewOrderService(store repository.Store, c cache.Cache, ttl time.Duration) *OrderService {
	return &OrderService{store: store, cache: c, ttl: ttl}
}

func (s *OrderService) allOrders(ctx context.Context, log *zap.Logger) ([]model.Order, error) {
	return cache.Fetch(ctx, s.cache, log, cache.NewKey(EntityOrders), s.ttl, s.store.ListOrders)
}

// List filters the order history and returns the requested page
func (s *OrderService) List(ctx context.Context, q OrderQuery) (*OrderPage, error) {
	log := logger.FromContext(ctx).Named("orders")

	orders, err := s.allOrders(ctx, log)
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}

	filtered := FilterOrders(orders, q.Search, q.Status)
	page := Paginate(filtered, q.Page, q.PageSize)

	rows := make([]OrderRow, 0, len(page))
	for _, o := range page {
		rows = append(rows, NewOrderRow(o))
	}

	return &OrderPage{
		Orders:     rows,
		Total:      len(filtered),
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: TotalPages(len(filtered), q.PageSize),
	}, nil
}

// Summary counts all, pending and delivered orders
func (s *OrderService) Summary(ctx context.Context) (*OrderSummary, error) {
	log := logger.FromContext(ctx).Named("orders")

	orders, err := s.allOrders(ctx, log)
	if err != nil {
		log.Error("Failed to summarize orders", zap.Error(err))
		return nil, err
	}

	summary := &OrderSummary{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case model.StatusPending:
			summary.Pending++
		case model.StatusDelivered:
			summary.Delivered++
		}
	}
	return summary, nil
}

// View returns the denormalized view of one order. Only the products the
// order references are fetched.
func (s *OrderService) View(ctx context.Context, id string) (*OrderView, error) {
	log := logger.FromContext(ctx).Named("orders").With(zap.String("order_id", id))

	// order ids are uuids; anything else cannot name an order
	if _, err := uuid.Parse(id); err != nil {
		log.Debug("Malformed order id", zap.Error(err))
		return nil, ErrNotFound
	}

	order, err := cache.Fetch(ctx, s.cache, log, cache.NewKey(EntityOrders, "id", id), s.ttl, func(ctx context.Context) (model.Order, error) {
		o, err := s.store.GetOrder(ctx, id)
		if err != nil {
			return model.Order{}, err
		}
		return *o, nil
	})
	if err != nil {
		log.Warn("Failed to load order", zap.Error(err))
		return nil, err
	}

	ids := ProductIDs(order)
	products, err := cache.Fetch(ctx, s.cache, log, cache.NewKey(EntityOrderProducts, id), s.ttl, func(ctx context.Context) ([]model.Product, error) {
		if len(ids) == 0 {
			return []model.Product{}, nil
		}
		return s.store.ProductsByIDs(ctx, ids)
	})
	if err != nil {
		log.Error("Failed to load order products", zap.Error(err))
		return nil, err
	}

	view := ResolveOrderItems(order, ProductLookup(products))
	if !view.TotalMatchesSubtotal {
		log.Debug("Order total differs from item subtotal",
			zap.String("total_amount", view.TotalAmount.String()),
			zap.String("items_subtotal", view.ItemsSubtotal.String()))
	}
	prometheus.RecordOrderView()
	return &view, nil
}
