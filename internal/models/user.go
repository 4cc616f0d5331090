package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleRider UserRole = "rider"
	RoleAdmin UserRole = "admin"
)

type User struct {
	gorm.Model
	Email string `gorm:"column:email;unique;not null" json:"email"`
	Role  string `gorm:"column:role;not null;default:user" json:"role"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
