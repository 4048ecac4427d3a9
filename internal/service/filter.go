package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/pampers23/admin-shoe/internal/model"
	"github.com/shopspring/decimal"
)

// StatusAll disables the status filter
const StatusAll = "all"

// OrderRow is one line of the order history table
type OrderRow struct {
	ID            string            `json:"id"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	CreatedAt     time.Time         `json:"created_at"`
	OrderDate     string            `json:"order_date"`
	ItemCount     int               `json:"item_count"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Status        model.OrderStatus `json:"status"`
}

// NewOrderRow flattens an order for the listing
func NewOrderRow(order model.Order) OrderRow {
	row := OrderRow{
		ID:           order.ID,
		CustomerName: CustomerName(order),
		CreatedAt:    order.CreatedAt,
		OrderDate:    order.CreatedAt.Format(OrderDateLayout),
		ItemCount:    ItemCount(order),
		TotalAmount:  order.TotalAmount,
		Status:       order.Status,
	}
	if order.Customer != nil {
		row.CustomerEmail = order.Customer.Email
	}
	return row
}

// MatchesOrderSearch reports whether search occurs in the order. Id, name and
// email are compared case-insensitively; date, item count and total are
// matched as literal substrings of their display form.
func MatchesOrderSearch(order model.Order, search string) bool {
	lowered := strings.ToLower(search)

	var first, last, email string
	if order.Customer != nil {
		first, last, email = order.Customer.Firstname, order.Customer.Lastname, order.Customer.Email
	}
	fullName := strings.ToLower(first + " " + last)

	return strings.Contains(strings.ToLower(order.ID), lowered) ||
		strings.Contains(fullName, lowered) ||
		(email != "" && strings.Contains(strings.ToLower(email), lowered)) ||
		strings.Contains(order.CreatedAt.Format(OrderDateLayout), search) ||
		strings.Contains(strconv.Itoa(ItemCount(order)), search) ||
		strings.Contains(order.TotalAmount.String(), search)
}

// MatchesOrderStatus reports whether the order passes the status filter
func MatchesOrderStatus(order model.Order, status string) bool {
	return status == StatusAll || string(order.Status) == status
}

// FilterOrders keeps the orders matching both the search text and the status
// filter, preserving their order. It scans the whole set on every call.
func FilterOrders(orders []model.Order, search, status string) []model.Order {
	filtered := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if MatchesOrderStatus(o, status) && MatchesOrderSearch(o, search) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// FilterProducts keeps products whose name or brand contains search
// (case-insensitive) and whose normalized category matches category.
func FilterProducts(products []model.Product, search, category string) []model.Product {
	lowered := strings.ToLower(search)
	wantCategory := ""
	if category != "" && category != StatusAll {
		wantCategory = NormalizeCategory(category)
	}

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		matchesSearch := strings.Contains(strings.ToLower(p.Name), lowered) ||
			strings.Contains(strings.ToLower(p.Brand), lowered)
		matchesCategory := wantCategory == "" || NormalizeCategory(p.Category) == wantCategory
		if matchesSearch && matchesCategory {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
