package services

import (
	"context"
	"errors"
	"fmt"

	"inventario/internal/models"
	"inventario/internal/repositories"

	"github.com/shopspring/decimal"
)

// ProductService handles business logic related to products, including the
// referential checks against categories and suppliers.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
	suppliers  repositories.SupplierRepository
	tx         repositories.Transactor
	events     EventPublisher
}

// Availability answers whether a product can serve a requested quantity.
type Availability struct {
	ProductID          uint `json:"productoId"`
	Stock              int  `json:"stock"`
	Requested          int  `json:"cantidad"`
	HasStock           bool `json:"hasStock"`
	HasSufficientStock bool `json:"hasSufficientStock"`
}

// DiscountQuote is a product price with a percentage discount applied.
type DiscountQuote struct {
	ProductID       uint            `json:"productoId"`
	Price           decimal.Decimal `json:"precio"`
	Percentage      decimal.Decimal `json:"porcentaje"`
	DiscountedPrice decimal.Decimal `json:"precioConDescuento"`
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(
	repo repositories.ProductRepository,
	categories repositories.CategoryRepository,
	suppliers repositories.SupplierRepository,
	tx repositories.Transactor,
	events EventPublisher,
) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		suppliers:  suppliers,
		tx:         tx,
		events:     events,
	}
}

// GetAllProducts lists every product in id order.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.ProductView, error) {
	return s.repo.FindViews(ctx, repositories.ProductQuery{})
}

// GetProductByID returns a product or an error wrapping repositories.ErrNotFound.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.ProductView, error) {
	return s.repo.FindViewByID(ctx, id)
}

// GetProductsSortedByCategory lists products by category name, then product name.
func (s *ProductService) GetProductsSortedByCategory(ctx context.Context) ([]models.ProductView, error) {
	return s.repo.FindViews(ctx, repositories.ProductQuery{OrderByCategory: true})
}

// SearchProductsByName lists products whose name contains fragment. An empty
// fragment matches nothing; the HTTP route never passes one.
func (s *ProductService) SearchProductsByName(ctx context.Context, fragment string) ([]models.ProductView, error) {
	if fragment == "" {
		return []models.ProductView{}, nil
	}
	return s.repo.FindViews(ctx, repositories.ProductQuery{NameContains: fragment})
}

// GetProductsBySupplier lists the products of one supplier.
func (s *ProductService) GetProductsBySupplier(ctx context.Context, supplierID uint) ([]models.ProductView, error) {
	return s.repo.FindViews(ctx, repositories.ProductQuery{SupplierID: &supplierID})
}

// GetProductsByCategory lists the products of one category.
func (s *ProductService) GetProductsByCategory(ctx context.Context, categoryID uint) ([]models.ProductView, error) {
	return s.repo.FindViews(ctx, repositories.ProductQuery{CategoryID: &categoryID})
}

// CreateProduct validates the input, resolves the category and supplier and
// inserts the product in one transaction. Nothing is written when either
// reference is missing.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.ProductView, error) {
	if err := ValidateProductInput(&in); err != nil {
		return nil, err
	}

	var view *models.ProductView
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolveReferences(ctx, in.CategoryID, in.SupplierID); err != nil {
			return err
		}
		product := &models.Product{
			Name:             in.Name,
			ShortDescription: in.ShortDescription,
			Price:            in.Price,
			Stock:            in.Stock,
			CategoryID:       in.CategoryID,
			SupplierID:       in.SupplierID,
		}
		if err := s.repo.Create(ctx, product); err != nil {
			return referenceViolation(err)
		}
		var err error
		view, err = s.repo.FindViewByID(ctx, product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	notify(ctx, s.events, EventProductCreated, view.ID)
	return view, nil
}

// UpdateProduct replaces all mutable fields of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.ProductView, error) {
	if err := ValidateProductInput(&in); err != nil {
		return nil, err
	}

	var view *models.ProductView
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		product, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.resolveReferences(ctx, in.CategoryID, in.SupplierID); err != nil {
			return err
		}

		product.Name = in.Name
		product.ShortDescription = in.ShortDescription
		product.Price = in.Price
		product.Stock = in.Stock
		product.CategoryID = in.CategoryID
		product.SupplierID = in.SupplierID
		if err := s.repo.Update(ctx, product); err != nil {
			return referenceViolation(err)
		}
		view, err = s.repo.FindViewByID(ctx, product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	notify(ctx, s.events, EventProductUpdated, view.ID)
	return view, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	notify(ctx, s.events, EventProductDeleted, id)
	return nil
}

// ReduceStock takes quantity units out of stock. An amount larger than the
// stock leaves the product untouched and is not an error.
func (s *ProductService) ReduceStock(ctx context.Context, id uint, in StockAdjustmentInput) (*models.ProductView, error) {
	if err := ValidateStockAdjustmentInput(&in); err != nil {
		return nil, err
	}
	return s.adjustStock(ctx, id, func(p *models.Product) error {
		p.ReduceStock(in.Quantity)
		return nil
	})
}

// IncreaseStock puts quantity units into stock. An increase that would take
// the stock past models.MaxStock is a validation error.
func (s *ProductService) IncreaseStock(ctx context.Context, id uint, in StockAdjustmentInput) (*models.ProductView, error) {
	if err := ValidateStockAdjustmentInput(&in); err != nil {
		return nil, err
	}
	return s.adjustStock(ctx, id, func(p *models.Product) error {
		if err := p.IncreaseStock(in.Quantity); err != nil {
			return &ValidationError{
				Fields: map[string]string{"cantidad": fmt.Sprintf("stock %d plus %d exceeds %d", p.Stock, in.Quantity, models.MaxStock)},
				Err:    err,
			}
		}
		return nil
	})
}

func (s *ProductService) adjustStock(ctx context.Context, id uint, apply func(*models.Product) error) (*models.ProductView, error) {
	var (
		view    *models.ProductView
		changed bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		product, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		before := product.Stock
		if err := apply(product); err != nil {
			return err
		}
		if product.Stock != before {
			changed = true
			if err := s.repo.Update(ctx, product); err != nil {
				return err
			}
		}
		view, err = s.repo.FindViewByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if changed {
		notify(ctx, s.events, EventStockAdjusted, id)
	}
	return view, nil
}

// CheckAvailability reports whether a product has stock and whether it can
// serve requested units.
func (s *ProductService) CheckAvailability(ctx context.Context, id uint, requested int) (*Availability, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Availability{
		ProductID:          product.ID,
		Stock:              product.Stock,
		Requested:          requested,
		HasStock:           product.HasStock(),
		HasSufficientStock: product.HasSufficientStock(requested),
	}, nil
}

// QuoteDiscount applies percentage to the product price. A percentage outside
// [0, 100] fails with models.ErrInvalidDiscount.
func (s *ProductService) QuoteDiscount(ctx context.Context, id uint, percentage decimal.Decimal) (*DiscountQuote, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	discounted, err := product.PriceWithDiscount(percentage)
	if err != nil {
		return nil, err
	}
	return &DiscountQuote{
		ProductID:       product.ID,
		Price:           product.Price,
		Percentage:      percentage,
		DiscountedPrice: discounted,
	}, nil
}

// resolveReferences checks both references and reports every missing one.
func (s *ProductService) resolveReferences(ctx context.Context, categoryID, supplierID uint) error {
	fields := map[string]string{}

	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		fields["categoriaId"] = fmt.Sprintf("category %d does not exist", categoryID)
	}
	if _, err := s.suppliers.GetByID(ctx, supplierID); err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		fields["proveedorId"] = fmt.Sprintf("supplier %d does not exist", supplierID)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields, Err: ErrReferenceNotFound}
	}
	return nil
}

// referenceViolation turns a foreign key failure that slipped past
// resolveReferences (a reference deleted concurrently) into the same
// validation error.
func referenceViolation(err error) error {
	if errors.Is(err, repositories.ErrForeignKey) {
		return &ValidationError{
			Fields: map[string]string{"categoriaId/proveedorId": "referenced entity no longer exists"},
			Err:    ErrReferenceNotFound,
		}
	}
	return err
}
