package models

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrInvalidDiscount is returned for a discount percentage outside [0, 100].
var ErrInvalidDiscount = errors.New("discount percentage must be between 0 and 100")

// ErrStockLimit is returned when an increase would take stock past MaxStock.
var ErrStockLimit = errors.New("stock would exceed the maximum")

// MaxStock is the largest stock the integer column holds on every driver.
const MaxStock = math.MaxInt32

var hundred = decimal.NewFromInt(100)

// Product is a sellable item. It belongs to exactly one Category and one
// Supplier; deleting either while referenced is rejected by the store.
type Product struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Name             string          `json:"nombre" gorm:"column:nombre;type:varchar(100);not null;index"`
	ShortDescription string          `json:"descripcionCorta" gorm:"column:descripcion_corta;type:varchar(200)"`
	Price            decimal.Decimal `json:"precio" gorm:"column:precio;type:decimal(18,2);not null"`
	Stock            int             `json:"stock" gorm:"column:stock;not null"`
	CategoryID       uint            `json:"categoriaId" gorm:"column:categoria_id;not null;index"`
	SupplierID       uint            `json:"proveedorId" gorm:"column:proveedor_id;not null;index"`
	Version          uint            `json:"-" gorm:"not null"`
	CreatedAt        time.Time       `json:"-"`
	UpdatedAt        time.Time       `json:"-"`

	Category Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION"`
	Supplier Supplier `json:"-" gorm:"foreignKey:SupplierID;constraint:OnUpdate:NO ACTION,OnDelete:NO ACTION"`
}

func (Product) TableName() string { return "productos" }

// HasStock reports whether at least one unit is available.
func (p *Product) HasStock() bool {
	return p.Stock > 0
}

// HasSufficientStock reports whether requested units can be served.
func (p *Product) HasSufficientStock(requested int) bool {
	return p.Stock >= requested
}

// ReduceStock removes amount units. When amount exceeds the current stock the
// call does nothing and reports no error; callers that need to know must check
// HasSufficientStock first.
func (p *Product) ReduceStock(amount int) {
	if amount <= p.Stock {
		p.Stock -= amount
	}
}

// IncreaseStock adds amount units. An increase past MaxStock fails with
// ErrStockLimit and leaves the stock unchanged.
func (p *Product) IncreaseStock(amount int) error {
	if amount > MaxStock-p.Stock {
		return ErrStockLimit
	}
	p.Stock += amount
	return nil
}

// PriceWithDiscount returns the price reduced by percentage percent.
func (p *Product) PriceWithDiscount(percentage decimal.Decimal) (decimal.Decimal, error) {
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return decimal.Zero, ErrInvalidDiscount
	}
	return p.Price.Mul(decimal.NewFromInt(1).Sub(percentage.Div(hundred))), nil
}

// ProductView is the flattened read shape of a product: references are
// replaced by the category name and the supplier legal name.
type ProductView struct {
	ID               uint            `json:"id"`
	Name             string          `json:"nombre"`
	ShortDescription string          `json:"descripcionCorta"`
	Price            decimal.Decimal `json:"precio"`
	Stock            int             `json:"stock"`
	CategoryName     string          `json:"categoria"`
	SupplierName     string          `json:"proveedor"`
}
