package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Status      string          `gorm:"size:20;not null;default:pending;index" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"totalAmount"`

	TableID uint  `gorm:"not null;index" json:"tableId"`
	Table   Table `json:"-"` // preload for list/detail pages

	UserID uint `gorm:"not null" json:"userId"`
	User   User `json:"-"`

	CustomerID *uint     `json:"customerId"`
	Customer   *Customer `json:"-"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// Active reports whether the order still holds its table.
func (o Order) Active() bool {
	return o.Status != OrderCompleted && o.Status != OrderCancelled
}
