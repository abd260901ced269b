package database

import (
	"context"
	"fmt"

	"inventario/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func seedCategories() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Electrónicos", Description: "Productos electrónicos y tecnológicos", Version: 1},
		{ID: 2, Name: "Hogar", Description: "Productos para el hogar", Version: 1},
		{ID: 3, Name: "Ropa", Description: "Prendas de vestir", Version: 1},
	}
}

func seedSuppliers() []models.Supplier {
	return []models.Supplier{
		{ID: 1, LegalName: "TechCorp S.A.", Contact: "contacto@techcorp.com", Version: 1},
		{ID: 2, LegalName: "HomeSupplies Ltda.", Contact: "ventas@homesupplies.com", Version: 1},
		{ID: 3, LegalName: "FashionStyle S.A.", Contact: "info@fashionstyle.com", Version: 1},
	}
}

// Seed inserts the fixed categories and suppliers unless rows with the same
// id or name already exist. Running it again is a no-op.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := seedCategories()
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		suppliers := seedSuppliers()
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&suppliers).Error; err != nil {
			return fmt.Errorf("failed to seed suppliers: %w", err)
		}

		// Explicit ids do not advance PostgreSQL sequences.
		if tx.Dialector.Name() == "postgres" {
			for _, table := range []string{"categorias", "proveedores"} {
				stmt := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST((SELECT MAX(id) FROM %s), 1))", table, table)
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("failed to advance %s id sequence: %w", table, err)
				}
			}
		}
		return nil
	})
}
