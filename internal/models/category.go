package models

import "time"

// Category groups products. The products of a category are found by querying
// Product.CategoryID; the category itself holds no back-reference.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"nombre" gorm:"column:nombre;type:varchar(100);not null;uniqueIndex"`
	Description string    `json:"descripcion" gorm:"column:descripcion;type:varchar(500)"`
	Version     uint      `json:"-" gorm:"not null"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Category) TableName() string { return "categorias" }
