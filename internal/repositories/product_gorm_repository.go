package repositories

import (
	"context"
	"fmt"
	"strings"

	"inventario/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const productViewColumns = `productos.id AS id,
	productos.nombre AS name,
	productos.descripcion_corta AS short_description,
	productos.precio AS price,
	productos.stock AS stock,
	categorias.nombre AS category_name,
	proveedores.razon_social AS supplier_name`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetByID retrieves a single product row by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := conn(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("product with ID %d: %w", id, translate(err))
	}
	return &product, nil
}

// Create inserts a new product. Category and supplier must already exist; the
// foreign keys reject the insert otherwise.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.Version = 1
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", translate(err))
	}
	return nil
}

// Update replaces every mutable field of a product, guarded by its version.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := conn(ctx, r.db).Model(&models.Product{}).
		Where("id = ? AND version = ?", product.ID, product.Version).
		Updates(map[string]any{
			"nombre":            product.Name,
			"descripcion_corta": product.ShortDescription,
			"precio":            product.Price,
			"stock":             product.Stock,
			"categoria_id":      product.CategoryID,
			"proveedor_id":      product.SupplierID,
			"version":           product.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", product.ID, zeroRowsUpdated(ctx, r.db, &models.Product{}, product.ID))
	}
	product.Version++
	return nil
}

// Delete deletes a product by its ID.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// CountByCategory counts the products that reference a category.
func (r *GORMProductRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.Product{}).Where("categoria_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products of category %d: %w", categoryID, translate(err))
	}
	return count, nil
}

// CountBySupplier counts the products that reference a supplier.
func (r *GORMProductRepository) CountBySupplier(ctx context.Context, supplierID uint) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.Product{}).Where("proveedor_id = ?", supplierID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products of supplier %d: %w", supplierID, translate(err))
	}
	return count, nil
}

// FindViews lists products joined with their category and supplier.
func (r *GORMProductRepository) FindViews(ctx context.Context, q ProductQuery) ([]models.ProductView, error) {
	tx := r.views(ctx)

	if q.NameContains != "" {
		tx = tx.Where(`productos.nombre LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(q.NameContains)+"%")
	}
	if q.CategoryID != nil {
		tx = tx.Where("productos.categoria_id = ?", *q.CategoryID)
	}
	if q.SupplierID != nil {
		tx = tx.Where("productos.proveedor_id = ?", *q.SupplierID)
	}

	if q.OrderByCategory {
		tx = tx.Order(r.ordinal("categorias.nombre")).Order(r.ordinal("productos.nombre")).Order("productos.id")
	} else {
		tx = tx.Order("productos.id")
	}

	views := []models.ProductView{}
	if err := tx.Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", translate(err))
	}
	return views, nil
}

// FindViewByID returns the flattened view of a single product.
func (r *GORMProductRepository) FindViewByID(ctx context.Context, id uint) (*models.ProductView, error) {
	var views []models.ProductView
	if err := r.views(ctx).Where("productos.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("failed to query product %d: %w", id, translate(err))
	}
	if len(views) == 0 {
		return nil, fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
	}
	return &views[0], nil
}

func (r *GORMProductRepository) views(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).
		Table("productos").
		Select(productViewColumns).
		Joins("JOIN categorias ON categorias.id = productos.categoria_id").
		Joins("JOIN proveedores ON proveedores.id = productos.proveedor_id")
}

// ordinal forces byte-wise ordering. SQLite's default BINARY collation already
// is; PostgreSQL needs the "C" collation.
func (r *GORMProductRepository) ordinal(column string) string {
	if r.db.Dialector.Name() == "postgres" {
		return column + ` COLLATE "C"`
	}
	return column
}
