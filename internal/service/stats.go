package service

import (
	"github.com/pampers23/admin-shoe/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// StatCard is one tile of the dashboard overview
type StatCard struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// StatsInput holds the raw figures the overview is computed from
type StatsInput struct {
	ProductCount  int64
	CustomerCount int64
	Orders        []model.OrderTotal
}

var printer = message.NewPrinter(language.English)

// Revenue sums total_amount over completed orders only
func Revenue(orders []model.OrderTotal) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status == model.StatusCompleted {
			total = total.Add(o.TotalAmount)
		}
	}
	return total
}

// ActiveOrders counts pending orders
func ActiveOrders(orders []model.OrderTotal) int {
	n := 0
	for _, o := range orders {
		if o.Status == model.StatusPending {
			n++
		}
	}
	return n
}

// FormatCurrency renders an amount as dollars with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	return printer.Sprintf("$%.2f", amount.Round(2).InexactFloat64())
}

// ComputeStats builds the four overview cards
func ComputeStats(in StatsInput) []StatCard {
	revenue := Revenue(in.Orders)
	revenueDescription := "Total sales revenue"
	if revenue.IsZero() {
		revenueDescription = "No orders yet"
	}

	return []StatCard{
		{
			Title:       "Total Products",
			Value:       printer.Sprintf("%d", in.ProductCount),
			Description: "Shoes in your inventory",
			Icon:        "package",
			Color:       "blue",
		},
		{
			Title:       "Total Customers",
			Value:       printer.Sprintf("%d", in.CustomerCount),
			Description: "Registered customers",
			Icon:        "users",
			Color:       "green",
		},
		{
			Title:       "Revenue",
			Value:       FormatCurrency(revenue),
			Description: revenueDescription,
			Icon:        "trending-up",
			Color:       "purple",
		},
		{
			Title:       "Active Orders",
			Value:       printer.Sprintf("%d", ActiveOrders(in.Orders)),
			Description: "Orders awaiting fulfilment",
			Icon:        "shopping-cart",
			Color:       "orange",
		},
	}
}
