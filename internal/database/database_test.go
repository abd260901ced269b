package database

import (
	"context"
	"fmt"
	"testing"

	"inventario/internal/config"
	"inventario/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		Environment: "test",
		DBDriver:    config.DriverSQLite,
		DatabaseDSN: fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()),
	}
	db, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db))
	return db
}

func TestSeed_IsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db))
	require.NoError(t, Seed(ctx, db))

	var categories []models.Category
	require.NoError(t, db.Order("id").Find(&categories).Error)
	require.Len(t, categories, 3)
	assert.Equal(t, "Electrónicos", categories[0].Name)
	assert.Equal(t, "Hogar", categories[1].Name)
	assert.Equal(t, "Ropa", categories[2].Name)

	var suppliers int64
	require.NoError(t, db.Model(&models.Supplier{}).Count(&suppliers).Error)
	assert.Equal(t, int64(3), suppliers)
}

func TestSeed_NewRowsGetFreshIDs(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(context.Background(), db))

	c := models.Category{Name: "Herramientas", Version: 1}
	require.NoError(t, db.Create(&c).Error)
	assert.Equal(t, uint(4), c.ID)
}

func TestOpen_TranslatesConstraintErrors(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(context.Background(), db))

	err := db.Create(&models.Category{Name: "Hogar", Version: 1}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	orphan := models.Product{
		Name:       "Orphan",
		Price:      decimal.NewFromInt(1),
		CategoryID: 99,
		SupplierID: 1,
		Version:    1,
	}
	err = db.Omit("Category", "Supplier").Create(&orphan).Error
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
}

func TestPing(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, Ping(context.Background(), db))
}
