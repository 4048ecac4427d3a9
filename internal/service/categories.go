package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pampers23/admin-shoe/internal/model"
)

// UncategorizedKey groups products with an empty category
const UncategorizedKey = "uncategorized"

type categoryMeta struct {
	Description string
	Color       string
}

var categoryTable = map[string]categoryMeta{
	"running":   {Description: "Lightweight shoes built for road and track running", Color: "blue"},
	"casual":    {Description: "Comfortable everyday shoes for relaxed wear", Color: "green"},
	"lifestyle": {Description: "Fashion-forward shoes for everyday style", Color: "purple"},
	"sneakers":  {Description: "Classic and modern sneakers for any occasion", Color: "orange"},
	"formal":    {Description: "Dress shoes for business and special occasions", Color: "red"},
}

var defaultCategoryMeta = categoryMeta{Description: "No description available", Color: "gray"}

// NormalizeCategory returns the grouping key for a stored category value
func NormalizeCategory(category string) string {
	key := strings.ToLower(strings.TrimSpace(category))
	if key == "" {
		return UncategorizedKey
	}
	return key
}

// CategoryDisplayName upper-cases the first letter of a normalized key
func CategoryDisplayName(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}

// ComputeCategories groups product categories by normalized key and returns
// them in first-seen order with their display metadata.
func ComputeCategories(categories []string) []model.Category {
	counts := make(map[string]int)
	var order []string
	for _, c := range categories {
		key := NormalizeCategory(c)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	result := make([]model.Category, 0, len(order))
	for _, key := range order {
		meta, ok := categoryTable[key]
		if !ok {
			meta = defaultCategoryMeta
		}
		result = append(result, model.Category{
			Name:         CategoryDisplayName(key),
			ProductCount: counts[key],
			Description:  meta.Description,
			Color:        meta.Color,
		})
	}
	return result
}
