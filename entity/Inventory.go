package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Inventory struct {
	gorm.Model
	Name         string          `gorm:"size:100;not null" json:"name"`
	Quantity     decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"quantity"`
	Unit         string          `gorm:"size:20;not null" json:"unit"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"reorderLevel"`
	CostPerUnit  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"costPerUnit"`
	Supplier     string          `gorm:"size:100" json:"supplier"`
}

var InventoryUnits = [][2]string{
	{"kg", "Kilogram"},
	{"g", "Gram"},
	{"l", "Liter"},
	{"ml", "Milliliter"},
	{"piece", "Piece"},
}

// NeedsReorder is true once stock has fallen to the reorder level.
func (i Inventory) NeedsReorder() bool {
	return i.Quantity.LessThanOrEqual(i.ReorderLevel)
}
