package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of an order. Any status may be set to any
// other; nothing here drives transitions.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusCompleted OrderStatus = "completed"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusCompleted, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Customer represents a store customer
type Customer struct {
	ID        string    `json:"id" gorm:"type:uuid;primarykey"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Firstname string    `json:"firstname" gorm:"type:varchar(100)"`
	Lastname  string    `json:"lastname" gorm:"type:varchar(100)"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a uuid when none is set
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// Order represents a customer order with its line items
type Order struct {
	ID              string          `json:"id" gorm:"type:uuid;primarykey"`
	CustomerID      string          `json:"customer_id" gorm:"type:uuid;index;not null"`
	PaymentMethod   string          `json:"payment_method" gorm:"type:varchar(50)"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);index;not null"`
	ShippingAddress string          `json:"shipping_address" gorm:"type:text"`
	CreatedAt       time.Time       `json:"created_at"`
	Customer        *Customer       `json:"customers,omitempty" gorm:"foreignKey:CustomerID"`
	OrderItems      []OrderItem     `json:"order_items" gorm:"foreignKey:OrderID"`
}

// BeforeCreate assigns a uuid when none is set
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// OrderItem is one line of an order. Price is the unit price at the time of
// the order, not the product's current price.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primarykey"`
	OrderID   string          `json:"order_id" gorm:"type:uuid;index;not null"`
	ProductID uint            `json:"product_id" gorm:"index;not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
}

// OrderTotal is the (total_amount, status) projection used for statistics
type OrderTotal struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
}

// Admin links an auth user to the admin code used on the login screen
type Admin struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null"`
	AdminCode string    `json:"admin_code" gorm:"type:varchar(50);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}
