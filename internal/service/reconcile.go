package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/pampers23/admin-shoe/internal/model"
	"github.com/shopspring/decimal"
)

// OrderDateLayout is how order dates are displayed and searched
const OrderDateLayout = "Jan 02, 2006"

// OrderItemView is one line of the denormalized order view
type OrderItemView struct {
	ID               uint            `json:"id"`
	ProductID        uint            `json:"product_id"`
	Name             string          `json:"name"`
	ImageURL         *string         `json:"image_url,omitempty"`
	Quantity         int             `json:"quantity"`
	Price            decimal.Decimal `json:"price"`
	PriceDisplay     string          `json:"price_display"`
	ItemTotal        decimal.Decimal `json:"item_total"`
	ItemTotalDisplay string          `json:"item_total_display"`
}

// OrderView is an order enriched with customer and product details. It is
// computed on demand and never stored.
type OrderView struct {
	ID              string            `json:"id"`
	ShortID         string            `json:"short_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	PaymentMethod   string            `json:"payment_method"`
	Status          model.OrderStatus `json:"status"`
	ShippingAddress string            `json:"shipping_address,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	OrderDate       string            `json:"order_date"`
	Items           []OrderItemView   `json:"items"`
	ItemCount       int               `json:"item_count"`
	// ItemsSubtotal is the sum of line totals. TotalAmount stays authoritative
	// and the two are not required to agree.
	ItemsSubtotal        decimal.Decimal `json:"items_subtotal"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	TotalAmountDisplay   string          `json:"total_amount_display"`
	TotalMatchesSubtotal bool            `json:"total_matches_subtotal"`
}

// ProductIDs lists the distinct products an order references, in item order
func ProductIDs(order model.Order) []uint {
	seen := make(map[uint]bool, len(order.OrderItems))
	ids := make([]uint, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

// ItemCount sums quantities across the order's items
func ItemCount(order model.Order) int {
	n := 0
	for _, item := range order.OrderItems {
		n += item.Quantity
	}
	return n
}

// CustomerName joins first and last name, empty when the customer is unknown
func CustomerName(order model.Order) string {
	if order.Customer == nil {
		return ""
	}
	return strings.TrimSpace(order.Customer.Firstname + " " + order.Customer.Lastname)
}

// ShortOrderID is the compact identifier shown in order details
func ShortOrderID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "#" + strings.ToUpper(id)
}

// ProductLookup indexes products by id
func ProductLookup(products []model.Product) map[uint]model.Product {
	lookup := make(map[uint]model.Product, len(products))
	for _, p := range products {
		lookup[p.ID] = p
	}
	return lookup
}

// ResolveOrderItems joins an order's items with the products in lookup.
// Items whose product is missing get a "Product #<id>" label and no image.
func ResolveOrderItems(order model.Order, lookup map[uint]model.Product) OrderView {
	view := OrderView{
		ID:                 order.ID,
		ShortID:            ShortOrderID(order.ID),
		CustomerName:       CustomerName(order),
		PaymentMethod:      order.PaymentMethod,
		Status:             order.Status,
		ShippingAddress:    order.ShippingAddress,
		CreatedAt:          order.CreatedAt,
		OrderDate:          order.CreatedAt.Format(OrderDateLayout),
		Items:              make([]OrderItemView, 0, len(order.OrderItems)),
		ItemCount:          ItemCount(order),
		ItemsSubtotal:      decimal.Zero,
		TotalAmount:        order.TotalAmount,
		TotalAmountDisplay: order.TotalAmount.StringFixed(2),
	}
	if order.Customer != nil {
		view.CustomerEmail = order.Customer.Email
	}

	for _, item := range order.OrderItems {
		total := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		line := OrderItemView{
			ID:               item.ID,
			ProductID:        item.ProductID,
			Name:             fmt.Sprintf("Product #%d", item.ProductID),
			Quantity:         item.Quantity,
			Price:            item.Price,
			PriceDisplay:     item.Price.StringFixed(2),
			ItemTotal:        total,
			ItemTotalDisplay: total.StringFixed(2),
		}
		if product, ok := lookup[item.ProductID]; ok {
			line.Name = product.Name
			line.ImageURL = product.ImageURL
		}
		view.Items = append(view.Items, line)
		view.ItemsSubtotal = view.ItemsSubtotal.Add(total)
	}
	view.TotalMatchesSubtotal = view.ItemsSubtotal.Equal(order.TotalAmount)

	return view
}
