package services_test

import (
	"context"
	"fmt"
	"testing"

	"inventario/internal/config"
	"inventario/internal/database"
	"inventario/internal/models"
	"inventario/internal/repositories"
	"inventario/internal/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staleCountProducts reports no dependents, as a count taken just before a
// concurrent insert would.
type staleCountProducts struct {
	*repositories.GORMProductRepository
}

func (staleCountProducts) CountByCategory(context.Context, uint) (int64, error) { return 0, nil }

func (staleCountProducts) CountBySupplier(context.Context, uint) (int64, error) { return 0, nil }

func TestDelete_ReferencedAfterCount(t *testing.T) {
	db, err := database.Open(&config.Config{
		Environment: "test",
		DBDriver:    config.DriverSQLite,
		DatabaseDSN: fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	ctx := context.Background()

	categoryRepo := repositories.NewGORMCategoryRepository(db)
	supplierRepo := repositories.NewGORMSupplierRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	tx := repositories.NewGORMTransactor(db)

	tools := &models.Category{Name: "Tools"}
	require.NoError(t, categoryRepo.Create(ctx, tools))
	acme := &models.Supplier{LegalName: "Acme"}
	require.NoError(t, supplierRepo.Create(ctx, acme))
	require.NoError(t, productRepo.Create(ctx, &models.Product{
		Name:       "Hammer",
		Price:      decimal.RequireFromString("9.99"),
		Stock:      3,
		CategoryID: tools.ID,
		SupplierID: acme.ID,
	}))

	stale := staleCountProducts{productRepo}
	categories := services.NewCategoryService(categoryRepo, stale, tx, nil)
	suppliers := services.NewSupplierService(supplierRepo, stale, tx, nil)

	assert.ErrorIs(t, categories.DeleteCategory(ctx, tools.ID), services.ErrHasDependents)
	assert.ErrorIs(t, suppliers.DeleteSupplier(ctx, acme.ID), services.ErrHasDependents)

	_, err = categoryRepo.GetByID(ctx, tools.ID)
	assert.NoError(t, err)
	_, err = supplierRepo.GetByID(ctx, acme.ID)
	assert.NoError(t, err)
}
