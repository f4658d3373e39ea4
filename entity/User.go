package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:20;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:staff" json:"role"`

	// server of record
	Orders []Order `json:"-"`
}

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RoleChef    = "chef"
)

// Roles lists every role a user may hold.
var Roles = []string{RoleAdmin, RoleManager, RoleStaff, RoleChef}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
