package models

import "gorm.io/gorm"

const (
	RiderStatusPending  = "pending"
	RiderStatusApproved = "approved"
	RiderStatusRejected = "rejected"
)

// Rider is a rider application. Approval promotes the matching
// users row to the rider role; the two writes are not atomic.
type Rider struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Phone    string `json:"phone"`
	Region   string `json:"region"`
	District string `json:"district"`
	Status   string `gorm:"not null;default:pending" json:"status"`
}
