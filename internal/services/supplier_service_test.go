package services_test

import (
	"context"
	"fmt"
	"testing"

	"inventario/internal/models"
	"inventario/internal/repositories"
	"inventario/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSupplierService_CreateSupplier(t *testing.T) {
	repo := new(MockSupplierRepository)
	publisher := new(MockPublisher)
	service := services.NewSupplierService(repo, new(MockProductRepository), passthroughTransactor{}, publisher)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Supplier")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Supplier).ID = 4 }).
		Return(nil).Once()
	publisher.On("Publish", services.EventSupplierCreated, mock.Anything).Return(nil).Once()

	supplier, err := service.CreateSupplier(context.Background(), services.SupplierInput{LegalName: "Acme", Contact: "ventas@acme.test"})

	require.NoError(t, err)
	assert.Equal(t, uint(4), supplier.ID)
	assert.Equal(t, "Acme", supplier.LegalName)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSupplierService_CreateSupplier_Validation(t *testing.T) {
	repo := new(MockSupplierRepository)
	service := services.NewSupplierService(repo, new(MockProductRepository), passthroughTransactor{}, nil)

	_, err := service.CreateSupplier(context.Background(), services.SupplierInput{LegalName: "  "})

	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "razonSocial")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSupplierService_UpdateSupplier_Duplicate(t *testing.T) {
	repo := new(MockSupplierRepository)
	service := services.NewSupplierService(repo, new(MockProductRepository), passthroughTransactor{}, nil)

	existing := &models.Supplier{ID: 2, LegalName: "HomeSupplies Ltda.", Version: 1}
	repo.On("GetByID", mock.Anything, uint(2)).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, existing).
		Return(fmt.Errorf("supplier with ID 2: %w", repositories.ErrDuplicateKey)).Once()

	_, err := service.UpdateSupplier(context.Background(), 2, services.SupplierInput{LegalName: "TechCorp S.A."})

	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)
	repo.AssertExpectations(t)
}

func TestSupplierService_DeleteSupplier(t *testing.T) {
	repo := new(MockSupplierRepository)
	products := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewSupplierService(repo, products, passthroughTransactor{}, publisher)
	ctx := context.Background()

	repo.On("GetByID", mock.Anything, uint(1)).Return(&models.Supplier{ID: 1}, nil).Once()
	products.On("CountBySupplier", mock.Anything, uint(1)).Return(int64(1), nil).Once()
	assert.ErrorIs(t, service.DeleteSupplier(ctx, 1), services.ErrHasDependents)

	repo.On("GetByID", mock.Anything, uint(2)).Return(&models.Supplier{ID: 2}, nil).Once()
	products.On("CountBySupplier", mock.Anything, uint(2)).Return(int64(0), nil).Once()
	repo.On("Delete", mock.Anything, uint(2)).Return(nil).Once()
	publisher.On("Publish", services.EventSupplierDeleted, mock.Anything).Return(nil).Once()
	assert.NoError(t, service.DeleteSupplier(ctx, 2))

	repo.AssertExpectations(t)
	products.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
