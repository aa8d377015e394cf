package models

import "gorm.io/gorm"

// User is the primary user model.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Role     string `gorm:"size:50;default:customer" json:"role"`
}

// Role values.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)
