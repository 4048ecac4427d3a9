package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pampers23/admin-shoe/internal/model"
	"github.com/pampers23/admin-shoe/internal/repository"
	"github.com/pampers23/admin-shoe/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(n int) *int { return &n }

func validInput() ProductInput {
	return ProductInput{
		Name:        "  Air Zoom  ",
		SKU:         "AZ-001",
		Description: "Neutral daily trainer",
		Category:    "Running",
		Brand:       "Nike",
		Price:       decimalPtr("129.99"),
		Stock:       intPtr(12),
	}
}

func TestProductInput_Validate(t *testing.T) {
	in := validInput()
	require.NoError(t, in.Validate())
	assert.Equal(t, "Air Zoom", in.Name)

	empty := ProductInput{Price: decimalPtr("-0.01"), Stock: intPtr(-5), ImageURL: strPtr("   ")}
	err := empty.Validate()
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"name":        "Product name is required",
		"sku":         "SKU is required",
		"description": "Description is required",
		"category":    "Category is required",
		"brand":       "Brand is required",
		"price":       "Price must be a greater than 0",
		"stock":       "Stock cannot be negative",
	}, ve.Fields)
	assert.Nil(t, empty.ImageURL)
	assert.Contains(t, err.Error(), "Brand is required")
}

func TestProductInput_PriceAndStockRequired(t *testing.T) {
	in := validInput()
	in.Price = nil
	in.Stock = nil
	ve, ok := IsValidation(in.Validate())
	require.True(t, ok)
	assert.Equal(t, map[string]string{"price": "Price is required", "stock": "Stock is required"}, ve.Fields)

	in = validInput()
	in.Price = decimalPtr("0")
	in.Stock = intPtr(0)
	assert.NoError(t, in.Validate())
}

func TestProductInput_PriceStaysDecimal(t *testing.T) {
	var in ProductInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","sku":"B","description":"C","category":"D","brand":"E","price":0.1,"stock":1}`), &in))
	require.NoError(t, in.Validate())

	var p model.Product
	in.Apply(&p)
	assert.Equal(t, "0.1", p.Price.String())
	assert.True(t, p.Price.Add(decimal.RequireFromString("0.2")).Equal(decimal.RequireFromString("0.3")))
}

func TestProductInput_WhitespaceOnlyIsMissing(t *testing.T) {
	in := validInput()
	in.Brand = "   "
	ve, ok := IsValidation(in.Validate())
	require.True(t, ok)
	assert.Equal(t, map[string]string{"brand": "Brand is required"}, ve.Fields)
}

func TestFilterProducts(t *testing.T) {
	products := []model.Product{
		{ID: 1, Name: "Air Zoom", Brand: "Nike", Category: "Running"},
		{ID: 2, Name: "Gel Kayano", Brand: "Asics", Category: "running "},
		{ID: 3, Name: "Oxford", Brand: "Clarks", Category: "Formal"},
		{ID: 4, Name: "Mystery", Brand: "Nike", Category: ""},
	}

	ids := func(ps []model.Product) []uint {
		out := make([]uint, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []uint{1, 2, 3, 4}, ids(FilterProducts(products, "", StatusAll)))
	assert.Equal(t, []uint{1, 4}, ids(FilterProducts(products, "nike", "")))
	assert.Equal(t, []uint{1, 2}, ids(FilterProducts(products, "", "RUNNING")))
	assert.Equal(t, []uint{4}, ids(FilterProducts(products, "", "Uncategorized")))
	assert.Equal(t, []uint{2}, ids(FilterProducts(products, "kayano", "running")))
}

func TestCatalogService_CreateInvalidatesCache(t *testing.T) {
	store := newFakeStore()
	c := cache.NewMemory()
	catalog := NewCatalogService(store, c, time.Minute)
	dashboard := NewDashboardService(store, c, time.Minute)
	ctx := context.Background()

	cats, err := dashboard.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	created, err := catalog.Create(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)
	assert.True(t, decimal.RequireFromString("129.99").Equal(created.Price))

	cats, err = dashboard.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Running", cats[0].Name)
	assert.Equal(t, 2, store.callCount("ProductCategories"))
}

func TestCatalogService_CreateRejectsBeforeStore(t *testing.T) {
	store := newFakeStore()
	catalog := NewCatalogService(store, cache.NewMemory(), time.Minute)

	_, err := catalog.Create(context.Background(), ProductInput{})
	_, ok := IsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, 0, store.callCount("CreateProduct"))
}

func TestCatalogService_DuplicateSKU(t *testing.T) {
	store := newFakeStore()
	catalog := NewCatalogService(store, cache.NewMemory(), time.Minute)
	ctx := context.Background()

	_, err := catalog.Create(ctx, validInput())
	require.NoError(t, err)
	_, err = catalog.Create(ctx, validInput())
	assert.ErrorIs(t, err, repository.ErrConstraint)
}

func TestCatalogService_ListGetUpdateDelete(t *testing.T) {
	store := newFakeStore()
	store.addProduct(model.Product{Name: "Air Zoom", Brand: "Nike", Category: "Running", Stock: 0})
	store.addProduct(model.Product{Name: "Oxford", Brand: "Clarks", Category: "Formal", Stock: 5})
	store.addProduct(model.Product{Name: "Court", Brand: "Nike", Category: "Sneakers", Stock: 40})
	catalog := NewCatalogService(store, cache.NewMemory(), time.Minute)
	ctx := context.Background()

	page, err := catalog.List(ctx, ProductQuery{Search: "nike", Category: StatusAll, Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Products, 1)
	assert.Equal(t, model.StockOut, page.Products[0].StockStatus)

	p, err := catalog.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Oxford", p.Name)

	in := validInput()
	in.Name = "Oxford II"
	updated, err := catalog.Update(ctx, 2, in)
	require.NoError(t, err)
	assert.Equal(t, "Oxford II", updated.Name)

	p, err = catalog.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Oxford II", p.Name, "update must invalidate the cached product")

	_, err = catalog.Update(ctx, 99, validInput())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, catalog.Delete(ctx, 2))
	_, err = catalog.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, catalog.Delete(ctx, 2), ErrNotFound)
}
