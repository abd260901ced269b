package repositories

import (
	"context"
	"fmt"

	"inventario/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// GetAll retrieves all categories ordered by id.
func (r *GORMCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := conn(ctx, r.db).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", translate(err))
	}
	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := conn(ctx, r.db).First(&category, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("category with ID %d: %w", id, translate(err))
	}
	return &category, nil
}

// Create inserts a new category. The unique index on nombre rejects duplicates.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	category.Version = 1
	if err := conn(ctx, r.db).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", translate(err))
	}
	return nil
}

// Update replaces the mutable fields of a category, provided its version is
// still the one that was read.
func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	res := conn(ctx, r.db).Model(&models.Category{}).
		Where("id = ? AND version = ?", category.ID, category.Version).
		Updates(map[string]any{
			"nombre":      category.Name,
			"descripcion": category.Description,
			"version":     category.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update category %d: %w", category.ID, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d: %w", category.ID, zeroRowsUpdated(ctx, r.db, &models.Category{}, category.ID))
	}
	category.Version++
	return nil
}

// Delete deletes a category by its ID.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
