package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/pampers23/admin-shoe/internal/model"
	"github.com/pampers23/admin-shoe/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleOrders() []model.Order {
	return []model.Order{
		{
			ID:          "a1b2c3d4-0000-4000-8000-000000000001",
			Status:      model.StatusPending,
			TotalAmount: decimal.RequireFromString("120.50"),
			CreatedAt:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			Customer:    &model.Customer{Firstname: "Jane", Lastname: "Doe", Email: "jane@example.com"},
			OrderItems: []model.OrderItem{
				{ID: 1, ProductID: 7, Quantity: 2, Price: decimal.RequireFromString("50.25")},
				{ID: 2, ProductID: 9, Quantity: 1, Price: decimal.RequireFromString("20")},
			},
		},
		{
			ID:          "ffee0011-0000-4000-8000-000000000002",
			Status:      model.StatusDelivered,
			TotalAmount: decimal.RequireFromString("80"),
			CreatedAt:   time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC),
			Customer:    &model.Customer{Firstname: "Sam", Lastname: "Lee", Email: "sam.lee@shop.io"},
			OrderItems: []model.OrderItem{
				{ID: 3, ProductID: 7, Quantity: 4, Price: decimal.RequireFromString("20")},
			},
		},
		{
			ID:          "0badcafe-0000-4000-8000-000000000003",
			Status:      model.StatusCompleted,
			TotalAmount: decimal.RequireFromString("35"),
			CreatedAt:   time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC),
			OrderItems: []model.OrderItem{
				{ID: 4, ProductID: 11, Quantity: 1, Price: decimal.RequireFromString("35")},
			},
		},
	}
}

func TestResolveOrderItems(t *testing.T) {
	order := sampleOrders()[0]
	lookup := ProductLookup([]model.Product{
		{ID: 7, Name: "Trail Runner", ImageURL: strPtr("https://img/7.png")},
	})

	view := ResolveOrderItems(order, lookup)

	assert.Equal(t, "#A1B2C3D4", view.ShortID)
	assert.Equal(t, "Jane Doe", view.CustomerName)
	assert.Equal(t, "jane@example.com", view.CustomerEmail)
	assert.Equal(t, "Jan 15, 2024", view.OrderDate)
	assert.Equal(t, 3, view.ItemCount)
	require.Len(t, view.Items, 2)

	assert.Equal(t, "Trail Runner", view.Items[0].Name)
	require.NotNil(t, view.Items[0].ImageURL)
	assert.Equal(t, "https://img/7.png", *view.Items[0].ImageURL)
	assert.Equal(t, "100.50", view.Items[0].ItemTotalDisplay)

	assert.Equal(t, "Product #9", view.Items[1].Name)
	assert.Nil(t, view.Items[1].ImageURL)
	assert.Equal(t, "20.00", view.Items[1].ItemTotalDisplay)

	assert.True(t, decimal.RequireFromString("120.50").Equal(view.ItemsSubtotal))
	assert.True(t, view.TotalMatchesSubtotal)
	assert.Equal(t, "120.50", view.TotalAmountDisplay)
}

func TestResolveOrderItems_TotalIsIndependent(t *testing.T) {
	order := sampleOrders()[1]
	order.TotalAmount = decimal.RequireFromString("99.99")

	view := ResolveOrderItems(order, nil)
	assert.True(t, decimal.NewFromInt(80).Equal(view.ItemsSubtotal))
	assert.True(t, decimal.RequireFromString("99.99").Equal(view.TotalAmount))
	assert.False(t, view.TotalMatchesSubtotal)
}

func TestResolveOrderItems_UnknownCustomer(t *testing.T) {
	view := ResolveOrderItems(sampleOrders()[2], nil)
	assert.Empty(t, view.CustomerName)
	assert.Empty(t, view.CustomerEmail)
	assert.Equal(t, "Product #11", view.Items[0].Name)
}

func TestProductIDs(t *testing.T) {
	order := model.Order{OrderItems: []model.OrderItem{
		{ProductID: 3}, {ProductID: 1}, {ProductID: 3}, {ProductID: 2},
	}}
	assert.Equal(t, []uint{3, 1, 2}, ProductIDs(order))
	assert.Empty(t, ProductIDs(model.Order{}))
}

func TestFilterOrders(t *testing.T) {
	orders := sampleOrders()

	tests := []struct {
		name   string
		search string
		status string
		want   []string
	}{
		{"everything", "", StatusAll, []string{orders[0].ID, orders[1].ID, orders[2].ID}},
		{"email only", "SHOP.IO", StatusAll, []string{orders[1].ID}},
		{"full name", "jane doe", StatusAll, []string{orders[0].ID}},
		{"id prefix", "A1B2", StatusAll, []string{orders[0].ID}},
		{"formatted date", "Feb", StatusAll, []string{orders[1].ID, orders[2].ID}},
		{"date is case sensitive", "feb", StatusAll, []string{}},
		{"total amount", "120.5", StatusAll, []string{orders[0].ID}},
		{"status only", "", "delivered", []string{orders[1].ID}},
		{"search and status", "Feb", "completed", []string{orders[2].ID}},
		{"no match", "zzz", StatusAll, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterOrders(orders, tt.search, tt.status)
			ids := make([]string, 0, len(got))
			for _, o := range got {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterOrders_Idempotent(t *testing.T) {
	orders := sampleOrders()
	for _, search := range []string{"", "jane", "Feb", "2"} {
		for _, status := range []string{StatusAll, "pending", "completed"} {
			once := FilterOrders(orders, search, status)
			twice := FilterOrders(once, search, status)
			assert.Equal(t, once, twice, "search=%q status=%q", search, status)
		}
	}
}

func TestPaginate(t *testing.T) {
	list := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, Paginate(list, 1, 3))
	assert.Equal(t, []int{7}, Paginate(list, 3, 3))
	assert.Empty(t, Paginate(list, 4, 3))
	assert.Empty(t, Paginate(list, 0, 3))
	assert.Empty(t, Paginate(list, 1, 0))
	assert.Empty(t, Paginate([]int{}, 1, 10))
	assert.Equal(t, 3, TotalPages(len(list), 3))
	assert.Equal(t, 0, TotalPages(0, 10))
}

func TestPaginate_HugePageDoesNotOverflow(t *testing.T) {
	list := []int{1, 2, 3}
	huge := math.MaxInt

	assert.NotPanics(t, func() {
		assert.Empty(t, Paginate(list, huge, huge))
	})
	assert.NotPanics(t, func() {
		assert.Empty(t, Paginate(list, huge, 2))
	})
	assert.Equal(t, []int{1, 2, 3}, Paginate(list, 1, huge))
	assert.Equal(t, 1, TotalPages(len(list), huge))
}

func TestPaginate_ReconstructsList(t *testing.T) {
	list := make([]int, 23)
	for i := range list {
		list[i] = i
	}

	for size := 1; size <= 25; size++ {
		var rebuilt []int
		for page := 1; page <= TotalPages(len(list), size); page++ {
			rebuilt = append(rebuilt, Paginate(list, page, size)...)
		}
		assert.Equal(t, list, rebuilt, "page size %d", size)
	}
}

func TestOrderService(t *testing.T) {
	store := newFakeStore()
	store.orders = sampleOrders()
	store.addProduct(model.Product{ID: 7, Name: "Trail Runner"})
	svc := NewOrderService(store, cache.NewMemory(), time.Minute)
	ctx := context.Background()

	page, err := svc.List(ctx, OrderQuery{Status: StatusAll, Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Orders, 2)
	assert.Equal(t, "Jane Doe", page.Orders[0].CustomerName)
	assert.Equal(t, 3, page.Orders[0].ItemCount)

	page, err = svc.List(ctx, OrderQuery{Status: StatusAll, Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Orders)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, &OrderSummary{Total: 3, Pending: 1, Delivered: 1}, summary)
	assert.Equal(t, 1, store.callCount("ListOrders"))

	view, err := svc.View(ctx, sampleOrders()[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Trail Runner", view.Items[0].Name)
	assert.Equal(t, "Product #9", view.Items[1].Name)

	_, err = svc.View(ctx, sampleOrders()[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.callCount("GetOrder"))
	assert.Equal(t, 1, store.callCount("ProductsByIDs"))

	_, err = svc.View(ctx, "b0b0b0b0-0000-4000-8000-000000000009")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, store.callCount("GetOrder"))
}

func TestOrderService_MalformedIDNeverReachesStore(t *testing.T) {
	store := newFakeStore()
	store.failWith = errors.New(`invalid input syntax for type uuid: "abc"`)
	svc := NewOrderService(store, cache.NewMemory(), time.Minute)

	for _, id := range []string{"abc", "", "a1b2c3d4", "' OR 1=1 --"} {
		_, err := svc.View(context.Background(), id)
		assert.ErrorIs(t, err, ErrNotFound, "id %q", id)
	}
	assert.Equal(t, 0, store.callCount("GetOrder"))
}
