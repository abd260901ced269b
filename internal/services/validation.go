package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// CategoryInput carries the mutable fields of a category.
type CategoryInput struct {
	Name        string `json:"nombre" validate:"required,max=100"`
	Description string `json:"descripcion" validate:"max=500"`
}

// SupplierInput carries the mutable fields of a supplier.
type SupplierInput struct {
	LegalName string `json:"razonSocial" validate:"required,max=200"`
	Contact   string `json:"contacto" validate:"max=100"`
}

// ProductInput carries the mutable fields of a product.
type ProductInput struct {
	Name             string          `json:"nombre" validate:"required,max=100"`
	ShortDescription string          `json:"descripcionCorta" validate:"max=200"`
	Price            decimal.Decimal `json:"precio" validate:"gt=0"`
	Stock            int             `json:"stock" validate:"gte=0,max=2147483647"`
	CategoryID       uint            `json:"categoriaId" validate:"required"`
	SupplierID       uint            `json:"proveedorId" validate:"required"`
}

// StockAdjustmentInput is the body of the stock endpoints.
type StockAdjustmentInput struct {
	Quantity int `json:"cantidad" validate:"gte=1,max=2147483647"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ValidateCategoryInput trims the input and checks field constraints.
func ValidateCategoryInput(in *CategoryInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return validateStruct(in)
}

// ValidateSupplierInput trims the input and checks field constraints.
func ValidateSupplierInput(in *SupplierInput) error {
	in.LegalName = strings.TrimSpace(in.LegalName)
	in.Contact = strings.TrimSpace(in.Contact)
	return validateStruct(in)
}

// ValidateProductInput trims the input, rounds the price to the two decimals
// the store keeps, and checks field constraints. Whether the referenced
// category and supplier exist is checked later, against the store.
func ValidateProductInput(in *ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.ShortDescription = strings.TrimSpace(in.ShortDescription)
	in.Price = in.Price.Round(2)
	return validateStruct(in)
}

// ValidateStockAdjustmentInput checks that the quantity is a positive count.
func ValidateStockAdjustmentInput(in *StockAdjustmentInput) error {
	return validateStruct(in)
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &ValidationError{Fields: fields}
}
