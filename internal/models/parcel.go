package models

import "gorm.io/gorm"

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"

	DeliveryStatusNotCollected = "not_collected"
)

type Parcel struct {
	gorm.Model
	Name            string  `gorm:"not null" json:"name"`
	Type            string  `gorm:"not null" json:"type"` // document or non-document
	WeightKG        float64 `gorm:"column:weight_kg" json:"weightKg"`
	SenderEmail     string  `gorm:"not null;index" json:"senderEmail"`
	SenderAddress   string  `json:"senderAddress"`
	ReceiverName    string  `json:"receiverName"`
	ReceiverAddress string  `json:"receiverAddress"`
	Cost            float64 `gorm:"not null" json:"cost"`
	PaymentStatus   string  `gorm:"not null;default:unpaid" json:"paymentStatus"`
	DeliveryStatus  string  `gorm:"not null;default:not_collected" json:"deliveryStatus"`
	TrackingID      string  `gorm:"column:tracking_id" json:"trackingId,omitempty"`
	PhotoURL        string  `gorm:"column:photo_url" json:"photoUrl,omitempty"`
}
