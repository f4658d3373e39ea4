package entity

import (
	"time"

	"gorm.io/gorm"
)

type Reservation struct {
	gorm.Model
	CustomerName  string `gorm:"size:100;not null" json:"customerName"`
	CustomerEmail string `gorm:"size:120" json:"customerEmail"`
	CustomerPhone string `gorm:"size:20;not null" json:"customerPhone"`
	PartySize     int    `gorm:"not null" json:"partySize"`
	// date and time of the booking in the restaurant's local zone
	ReservedAt time.Time `gorm:"not null;index" json:"reservedAt"`
	Status     string    `gorm:"size:20;not null;default:confirmed" json:"status"`
	Notes      string    `json:"notes"`

	TableID uint  `gorm:"not null;index" json:"tableId"`
	Table   Table `json:"-"`
}

const (
	ReservationConfirmed = "confirmed"
	ReservationSeated    = "seated"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

var ReservationStatuses = [][2]string{
	{ReservationConfirmed, "Confirmed"},
	{ReservationSeated, "Seated"},
	{ReservationCompleted, "Completed"},
	{ReservationCancelled, "Cancelled"},
}

// Open reports whether the booking still claims its table.
func (r Reservation) Open() bool {
	return r.Status == ReservationConfirmed || r.Status == ReservationSeated
}
