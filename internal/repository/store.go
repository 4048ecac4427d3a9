package repository

import (
	"context"

	"github.com/pampers23/admin-shoe/internal/model"
)

// Store is the data access layer over the products, customers, orders and
// order_items relations. Every method is a single pass-through to the backing
// store; returned entities have been decoded and validated.
type Store interface {
	Ping(ctx context.Context) error

	CountProducts(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	OrderTotals(ctx context.Context) ([]model.OrderTotal, error)
	ProductCategories(ctx context.Context) ([]string, error)

	ListProducts(ctx context.Context) ([]model.Product, error)
	RecentProducts(ctx context.Context, limit int) ([]model.Product, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	ProductsByIDs(ctx context.Context, ids []uint) ([]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id uint) error

	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
}

// Models lists every persisted entity, in migration order
func Models() []interface{} {
	return []interface{}{
		&model.Product{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
		&model.Admin{},
	}
}
