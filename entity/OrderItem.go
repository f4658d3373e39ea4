package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity int             `gorm:"not null;default:1" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // menu price at order time
	Status   string          `gorm:"size:20;not null;default:pending" json:"status"`
	Notes    string          `json:"notes"`

	OrderID uint  `gorm:"not null;index" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `gorm:"not null;index" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"` // preload when the item name is shown
}

// LineTotal is price × quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
