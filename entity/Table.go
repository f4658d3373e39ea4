package entity

import (
	"gorm.io/gorm"
)

type Table struct {
	gorm.Model
	TableNumber int    `gorm:"uniqueIndex;not null" json:"tableNumber"`
	Capacity    int    `gorm:"not null" json:"capacity"`
	Status      string `gorm:"size:20;not null;default:available" json:"status"`

	Orders       []Order       `json:"-"`
	Reservations []Reservation `json:"-"`
}

const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
)

var TableStatuses = [][2]string{
	{TableAvailable, "Available"},
	{TableOccupied, "Occupied"},
	{TableReserved, "Reserved"},
}
