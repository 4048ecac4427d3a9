package service

import (
	"context"
	"sort"
	"sync"

	"github.com/pampers23/admin-shoe/internal/model"
	"github.com/pampers23/admin-shoe/internal/repository"
)

// fakeStore is an in-memory repository.Store that counts calls
type fakeStore struct {
	mu        sync.Mutex
	products  map[uint]model.Product
	customers int64
	orders    []model.Order
	nextID    uint
	failWith  error
	calls     map[string]int
}

var _ repository.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[uint]model.Product),
		nextID:   1,
		calls:    make(map[string]int),
	}
}

func (f *fakeStore) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.failWith
}

func (f *fakeStore) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeStore) addProduct(p model.Product) model.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == 0 {
		p.ID = f.nextID
	}
	if p.ID >= f.nextID {
		f.nextID = p.ID + 1
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeStore) sortedProducts() []model.Product {
	out := make([]model.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.hit("Ping") }

func (f *fakeStore) CountProducts(ctx context.Context) (int64, error) {
	if err := f.hit("CountProducts"); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.products)), nil
}

func (f *fakeStore) CountCustomers(ctx context.Context) (int64, error) {
	if err := f.hit("CountCustomers"); err != nil {
		return 0, err
	}
	return f.customers, nil
}

func (f *fakeStore) OrderTotals(ctx context.Context) ([]model.OrderTotal, error) {
	if err := f.hit("OrderTotals"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := make([]model.OrderTotal, 0, len(f.orders))
	for _, o := range f.orders {
		totals = append(totals, model.OrderTotal{TotalAmount: o.TotalAmount, Status: o.Status})
	}
	return totals, nil
}

func (f *fakeStore) ProductCategories(ctx context.Context) ([]string, error) {
	if err := f.hit("ProductCategories"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, p := range f.sortedProducts() {
		out = append(out, p.Category)
	}
	return out, nil
}

func (f *fakeStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	if err := f.hit("ListProducts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedProducts(), nil
}

func (f *fakeStore) RecentProducts(ctx context.Context, limit int) ([]model.Product, error) {
	if err := f.hit("RecentProducts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.sortedProducts()
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeStore) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	if err := f.hit("GetProduct"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakeStore) ProductsByIDs(ctx context.Context, ids []uint) ([]model.Product, error) {
	if err := f.hit("ProductsByIDs"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateProduct(ctx context.Context, product *model.Product) error {
	if err := f.hit("CreateProduct"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.SKU == product.SKU {
			return repository.ErrConstraint
		}
	}
	product.ID = f.nextID
	f.nextID++
	f.products[product.ID] = *product
	return nil
}

func (f *fakeStore) UpdateProduct(ctx context.Context, product *model.Product) error {
	if err := f.hit("UpdateProduct"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.products[product.ID]
	if !ok {
		return repository.ErrNotFound
	}
	product.CreatedAt = existing.CreatedAt
	f.products[product.ID] = *product
	return nil
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id uint) error {
	if err := f.hit("DeleteProduct"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeStore) ListOrders(ctx context.Context) ([]model.Order, error) {
	if err := f.hit("ListOrders"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Order(nil), f.orders...), nil
}

func (f *fakeStore) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	if err := f.hit("GetOrder"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}
