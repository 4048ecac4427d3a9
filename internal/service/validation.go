package service

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pampers23/admin-shoe/internal/model"
	"github.com/pampers23/admin-shoe/internal/repository"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when the requested product or order does not exist
var ErrNotFound = repository.ErrNotFound

// ValidationError carries one message per rejected field, keyed by JSON name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// ProductInput is the product form submitted by the admin UI. Price and
// stock are pointers so an absent field is told apart from zero.
type ProductInput struct {
	Name        string           `json:"name" validate:"required,max=255"`
	SKU         string           `json:"sku" validate:"required,max=100"`
	Description string           `json:"description" validate:"required"`
	Category    string           `json:"category" validate:"required,max=100"`
	Brand       string           `json:"brand" validate:"required,max=100"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Stock       *int             `json:"stock" validate:"required,gte=0"`
	ImageURL    *string          `json:"image_url"`
}

var fieldMessages = map[string]map[string]string{
	"name":        {"required": "Product name is required", "max": "Product name is too long"},
	"sku":         {"required": "SKU is required", "max": "SKU is too long"},
	"description": {"required": "Description is required"},
	"category":    {"required": "Category is required", "max": "Category is too long"},
	"brand":       {"required": "Brand is required", "max": "Brand is too long"},
	"price":       {"required": "Price is required", "gte": "Price must be a greater than 0"},
	"stock":       {"required": "Stock is required", "gte": "Stock cannot be negative"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// numeric tags compare decimals by value
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Normalize trims every text field in place
func (in *ProductInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Brand = strings.TrimSpace(in.Brand)
	if in.ImageURL != nil {
		trimmed := strings.TrimSpace(*in.ImageURL)
		if trimmed == "" {
			in.ImageURL = nil
		} else {
			in.ImageURL = &trimmed
		}
	}
}

// Validate normalizes the input and checks it against the form rules
func (in *ProductInput) Validate() error {
	in.Normalize()

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	ve := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Field()][fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		if _, exists := ve.Fields[fe.Field()]; !exists {
			ve.Fields[fe.Field()] = msg
		}
	}
	return ve
}

// Apply copies a validated input onto p, leaving id and timestamps untouched
func (in *ProductInput) Apply(p *model.Product) {
	p.Name = in.Name
	p.SKU = in.SKU
	p.Description = in.Description
	p.Category = in.Category
	p.Brand = in.Brand
	p.Price = in.Price.Round(2)
	p.Stock = *in.Stock
	p.ImageURL = in.ImageURL
}
