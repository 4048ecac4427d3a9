package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a shoe in the catalog
type Product struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	SKU         string          `json:"sku" gorm:"type:varchar(100);unique;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"type:varchar(100);index"`
	Brand       string          `json:"brand" gorm:"type:varchar(100)"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Stock       int             `json:"stock" gorm:"default:0;not null"`
	ImageURL    *string         `json:"image_url,omitempty" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Stock levels shown next to a product
const (
	StockOut = "Out of Stock"
	StockLow = "Low Stock"
	StockIn  = "Active"

	LowStockThreshold = 20
)

// StockStatus reports the badge a product's stock level maps to
func StockStatus(stock int) string {
	switch {
	case stock <= 0:
		return StockOut
	case stock < LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

// Category is derived from product rows; it is never persisted.
type Category struct {
	Name         string `json:"name"`
	ProductCount int    `json:"productCount"`
	Description  string `json:"description"`
	Color        string `json:"color"`
}
