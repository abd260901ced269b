package repositories

import (
	"context"
	"fmt"

	"inventario/internal/models"

	"gorm.io/gorm"
)

// GORMSupplierRepository is a GORM implementation of SupplierRepository.
type GORMSupplierRepository struct {
	db *gorm.DB
}

// NewGORMSupplierRepository creates a new instance of GORMSupplierRepository.
func NewGORMSupplierRepository(db *gorm.DB) *GORMSupplierRepository {
	return &GORMSupplierRepository{
		db: db,
	}
}

// GetAll retrieves all suppliers ordered by id.
func (r *GORMSupplierRepository) GetAll(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := conn(ctx, r.db).Order("id").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all suppliers: %w", translate(err))
	}
	return suppliers, nil
}

// GetByID retrieves a single supplier by its ID.
func (r *GORMSupplierRepository) GetByID(ctx context.Context, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := conn(ctx, r.db).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("supplier with ID %d: %w", id, translate(err))
	}
	return &supplier, nil
}

// Create inserts a new supplier. The unique index on razon_social rejects duplicates.
func (r *GORMSupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	supplier.Version = 1
	if err := conn(ctx, r.db).Create(supplier).Error; err != nil {
		return fmt.Errorf("failed to create supplier: %w", translate(err))
	}
	return nil
}

// Update replaces the mutable fields of a supplier, provided its version is
// still the one that was read.
func (r *GORMSupplierRepository) Update(ctx context.Context, supplier *models.Supplier) error {
	res := conn(ctx, r.db).Model(&models.Supplier{}).
		Where("id = ? AND version = ?", supplier.ID, supplier.Version).
		Updates(map[string]any{
			"razon_social": supplier.LegalName,
			"contacto":     supplier.Contact,
			"version":      supplier.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update supplier %d: %w", supplier.ID, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("supplier with ID %d: %w", supplier.ID, zeroRowsUpdated(ctx, r.db, &models.Supplier{}, supplier.ID))
	}
	supplier.Version++
	return nil
}

// Delete deletes a supplier by its ID.
func (r *GORMSupplierRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Supplier{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete supplier %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("supplier with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
