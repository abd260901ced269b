package services

import (
	"context"
	"errors"
	"fmt"

	"inventario/internal/models"
	"inventario/internal/repositories"
)

// SupplierService handles business logic related to suppliers.
type SupplierService struct {
	repo     repositories.SupplierRepository
	products repositories.ProductRepository
	tx       repositories.Transactor
	events   EventPublisher
}

// NewSupplierService creates a new SupplierService. events may be nil.
func NewSupplierService(repo repositories.SupplierRepository, products repositories.ProductRepository, tx repositories.Transactor, events EventPublisher) *SupplierService {
	return &SupplierService{
		repo:     repo,
		products: products,
		tx:       tx,
		events:   events,
	}
}

func (s *SupplierService) GetAllSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.repo.GetAll(ctx)
}

func (s *SupplierService) GetSupplierByID(ctx context.Context, id uint) (*models.Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateSupplier stores a new supplier; legal names are unique.
func (s *SupplierService) CreateSupplier(ctx context.Context, in SupplierInput) (*models.Supplier, error) {
	if err := ValidateSupplierInput(&in); err != nil {
		return nil, err
	}

	supplier := &models.Supplier{LegalName: in.LegalName, Contact: in.Contact}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	notify(ctx, s.events, EventSupplierCreated, supplier.ID)
	return supplier, nil
}

// UpdateSupplier replaces legal name and contact of an existing supplier.
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uint, in SupplierInput) (*models.Supplier, error) {
	if err := ValidateSupplierInput(&in); err != nil {
		return nil, err
	}

	var supplier *models.Supplier
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		supplier, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		supplier.LegalName = in.LegalName
		supplier.Contact = in.Contact
		return s.repo.Update(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}
	notify(ctx, s.events, EventSupplierUpdated, supplier.ID)
	return supplier, nil
}

// DeleteSupplier removes a supplier unless products still point at it.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uint) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		count, err := s.products.CountBySupplier(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("supplier %d is used by %d products: %w", id, count, ErrHasDependents)
		}
		return s.repo.Delete(ctx, id)
	})
	if errors.Is(err, repositories.ErrForeignKey) {
		return fmt.Errorf("supplier %d: %w", id, ErrHasDependents)
	}
	if err != nil {
		return err
	}
	notify(ctx, s.events, EventSupplierDeleted, id)
	return nil
}
