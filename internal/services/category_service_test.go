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

func TestCategoryService_CreateCategory(t *testing.T) {
	repo := new(MockCategoryRepository)
	products := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewCategoryService(repo, products, passthroughTransactor{}, publisher)
	ctx := context.Background()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Category).ID = 4 }).
		Return(nil).Once()
	publisher.On("Publish", services.EventCategoryCreated, mock.Anything).Return(nil).Once()

	category, err := service.CreateCategory(ctx, services.CategoryInput{Name: "  Tools ", Description: "Hand tools"})
	require.NoError(t, err)
	assert.Equal(t, uint(4), category.ID)
	assert.Equal(t, "Tools", category.Name)

	// Second insert of the same name hits the unique index.
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Return(fmt.Errorf("failed to create category: %w", repositories.ErrDuplicateKey)).Once()
	_, err = service.CreateCategory(ctx, services.CategoryInput{Name: "Tools"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCategoryService_CreateCategory_Validation(t *testing.T) {
	repo := new(MockCategoryRepository)
	service := services.NewCategoryService(repo, new(MockProductRepository), passthroughTransactor{}, nil)

	_, err := service.CreateCategory(context.Background(), services.CategoryInput{Name: ""})

	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Field 'nombre' failed on the 'required' tag", validationErr.Fields["nombre"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	repo := new(MockCategoryRepository)
	service := services.NewCategoryService(repo, new(MockProductRepository), passthroughTransactor{}, nil)
	ctx := context.Background()

	existing := &models.Category{ID: 1, Name: "Electrónicos", Version: 1}
	repo.On("GetByID", mock.Anything, uint(1)).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, existing).Return(nil).Once()

	updated, err := service.UpdateCategory(ctx, 1, services.CategoryInput{Name: "Electrónica"})
	require.NoError(t, err)
	assert.Equal(t, "Electrónica", updated.Name)

	repo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, fmt.Errorf("category with ID 99: %w", repositories.ErrNotFound)).Once()
	_, err = service.UpdateCategory(ctx, 99, services.CategoryInput{Name: "X"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	repo.AssertExpectations(t)
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	repo := new(MockCategoryRepository)
	products := new(MockProductRepository)
	service := services.NewCategoryService(repo, products, passthroughTransactor{}, nil)
	ctx := context.Background()

	t.Run("referenced", func(t *testing.T) {
		repo.On("GetByID", mock.Anything, uint(1)).Return(&models.Category{ID: 1}, nil).Once()
		products.On("CountByCategory", mock.Anything, uint(1)).Return(int64(2), nil).Once()

		err := service.DeleteCategory(ctx, 1)

		assert.ErrorIs(t, err, services.ErrHasDependents)
		repo.AssertNotCalled(t, "Delete", mock.Anything, uint(1))
	})

	t.Run("unreferenced", func(t *testing.T) {
		repo.On("GetByID", mock.Anything, uint(2)).Return(&models.Category{ID: 2}, nil).Once()
		products.On("CountByCategory", mock.Anything, uint(2)).Return(int64(0), nil).Once()
		repo.On("Delete", mock.Anything, uint(2)).Return(nil).Once()

		assert.NoError(t, service.DeleteCategory(ctx, 2))
	})

	t.Run("product attached concurrently", func(t *testing.T) {
		repo.On("GetByID", mock.Anything, uint(3)).Return(&models.Category{ID: 3}, nil).Once()
		products.On("CountByCategory", mock.Anything, uint(3)).Return(int64(0), nil).Once()
		repo.On("Delete", mock.Anything, uint(3)).
			Return(fmt.Errorf("failed to delete category: %w", repositories.ErrForeignKey)).Once()

		assert.ErrorIs(t, service.DeleteCategory(ctx, 3), services.ErrHasDependents)
	})

	t.Run("missing", func(t *testing.T) {
		repo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, fmt.Errorf("category with ID 99: %w", repositories.ErrNotFound)).Once()

		assert.ErrorIs(t, service.DeleteCategory(ctx, 99), repositories.ErrNotFound)
	})

	repo.AssertExpectations(t)
	products.AssertExpectations(t)
}
