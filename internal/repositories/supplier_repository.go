package repositories

import (
	"context"

	"inventario/internal/models"
)

// SupplierRepository defines the interface for supplier data access.
type SupplierRepository interface {
	GetAll(ctx context.Context) ([]models.Supplier, error)
	GetByID(ctx context.Context, id uint) (*models.Supplier, error)
	Create(ctx context.Context, supplier *models.Supplier) error
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uint) error
}
