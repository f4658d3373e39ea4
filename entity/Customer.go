package entity

import (
	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model
	Name string `gorm:"size:100;not null" json:"name"`
	// nil when the customer gave no email, so the unique index ignores it
	Email   *string `gorm:"uniqueIndex;size:120" json:"email"`
	Phone   string  `gorm:"size:20" json:"phone"`
	Address string  `json:"address"`

	Orders []Order `json:"-"`
}

// EmailOrEmpty is used by forms and the API where a missing email is "".
func (c Customer) EmailOrEmpty() string {
	if c.Email == nil {
		return ""
	}
	return *c.Email
}
