package models

import "time"

// Supplier is the party a product is bought from, identified by its legal name.
type Supplier struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	LegalName string    `json:"razonSocial" gorm:"column:razon_social;type:varchar(200);not null;uniqueIndex"`
	Contact   string    `json:"contacto" gorm:"column:contacto;type:varchar(100)"`
	Version   uint      `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Supplier) TableName() string { return "proveedores" }
