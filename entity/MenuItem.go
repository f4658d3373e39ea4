package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `gorm:"size:50;not null" json:"category"`
	ImageURL    string          `gorm:"size:255" json:"imageUrl"`
	Available   bool            `gorm:"not null" json:"available"`

	OrderItems []OrderItem `json:"-"`
}

const (
	CategoryAppetizer = "appetizer"
	CategoryMain      = "main"
	CategoryDessert   = "dessert"
	CategoryBeverage  = "beverage"
)

// MenuCategories in display order, value then label.
var MenuCategories = [][2]string{
	{CategoryAppetizer, "Appetizer"},
	{CategoryMain, "Main Course"},
	{CategoryDessert, "Dessert"},
	{CategoryBeverage, "Beverage"},
}
