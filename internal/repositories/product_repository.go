package repositories

import (
	"context"

	"inventario/internal/models"
)

// ProductQuery narrows and orders the product read paths. Zero values mean
// "no filter" and insertion (id) order.
type ProductQuery struct {
	NameContains    string
	CategoryID      *uint
	SupplierID      *uint
	OrderByCategory bool
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error

	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
	CountBySupplier(ctx context.Context, supplierID uint) (int64, error)

	FindViews(ctx context.Context, q ProductQuery) ([]models.ProductView, error)
	FindViewByID(ctx context.Context, id uint) (*models.ProductView, error)
}
