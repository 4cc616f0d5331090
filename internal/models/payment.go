package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment records one settled checkout session. TransactionID is the
// processor-assigned id; the unique index enforces at most one row per
// completed session. Rows are never mutated after insert.
type Payment struct {
	gorm.Model
	Amount        float64   `gorm:"not null" json:"amount"`
	Currency      string    `gorm:"not null" json:"currency"`
	Email         string    `gorm:"not null;index" json:"email"`
	ParcelID      uint      `gorm:"not null" json:"parcelId"`
	ParcelName    string    `json:"parcelName"`
	TransactionID string    `gorm:"column:transaction_id;uniqueIndex;not null" json:"transactionId"`
	Status        string    `gorm:"not null" json:"status"`
	PaidAt        time.Time `gorm:"column:paid_at" json:"paidAt"`
	TrackingID    string    `gorm:"column:tracking_id;not null" json:"trackingId"`
}
