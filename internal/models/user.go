package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a customer or an admin of the food store.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	// Role distinguishes regular users from admins. Allowed values: "user", "admin".
	Role string `json:"role" gorm:"type:varchar(20);default:user" validate:"omitempty,oneof=user admin"`
	// AdminID is a human-readable identifier issued to admins at registration
	// and sent to them by email.
	AdminID      string         `json:"admin_id,omitempty" gorm:"type:varchar(20)"`
	OTP          string         `json:"-" gorm:"type:varchar(10)"`
	OTPExpiresAt *time.Time     `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
