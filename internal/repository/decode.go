package repository

import (
	"strconv"

	"github.com/pampers23/admin-shoe/internal/model"
)

// DecodeProduct validates a product row read from the store
func DecodeProduct(p *model.Product) error {
	id := strconv.FormatUint(uint64(p.ID), 10)
	if p.Price.IsNegative() {
		return &DecodeError{Relation: "products", ID: id, Field: "price", Reason: "negative price"}
	}
	if p.Stock < 0 {
		return &DecodeError{Relation: "products", ID: id, Field: "stock", Reason: "negative stock"}
	}
	return nil
}

// DecodeOrder validates an order row and its items
func DecodeOrder(o *model.Order) error {
	if o.ID == "" {
		return &DecodeError{Relation: "orders", ID: "<empty>", Field: "id", Reason: "missing id"}
	}
	if !o.Status.Valid() {
		return &DecodeError{Relation: "orders", ID: o.ID, Field: "status", Reason: "unknown status " + strconv.Quote(string(o.Status))}
	}
	for _, item := range o.OrderItems {
		if item.Quantity <= 0 {
			return &DecodeError{Relation: "order_items", ID: strconv.FormatUint(uint64(item.ID), 10), Field: "quantity", Reason: "quantity must be positive"}
		}
		if item.Price.IsNegative() {
			return &DecodeError{Relation: "order_items", ID: strconv.FormatUint(uint64(item.ID), 10), Field: "price", Reason: "negative price"}
		}
	}
	return nil
}

// DecodeOrderTotal validates a (total_amount, status) projection
func DecodeOrderTotal(t *model.OrderTotal) error {
	if !t.Status.Valid() {
		return &DecodeError{Relation: "orders", ID: "<projection>", Field: "status", Reason: "unknown status " + strconv.Quote(string(t.Status))}
	}
	return nil
}

func decodeProducts(products []model.Product) error {
	for i := range products {
		if err := DecodeProduct(&products[i]); err != nil {
			return err
		}
	}
	return nil
}

func decodeOrders(orders []model.Order) error {
	for i := range orders {
		if err := DecodeOrder(&orders[i]); err != nil {
			return err
		}
	}
	return nil
}
