package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/zapshift/zapshift-backend/internal/models"
	"github.com/zapshift/zapshift-backend/internal/services"
	"gorm.io/gorm"
)

// CreateCheckoutSession starts a payment for an unpaid parcel and
// returns the processor redirect URL.
func CreateCheckoutSession(svc *services.PaymentService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ParcelID uint `json:"parcelId" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var parcel models.Parcel
		if err := db.First(&parcel, input.ParcelID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Parcel not found"})
			return
		}

		if parcel.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(409, gin.H{"error": "Parcel is already paid"})
			return
		}

		url, err := svc.CreateCheckout(c.Request.Context(), &parcel)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create checkout session"})
			return
		}

		c.JSON(200, gin.H{"url": url})
	}
}

// PaymentSuccess is the redirect target after checkout. Safe to call any
// number of times for the same session.
func PaymentSuccess(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(400, gin.H{"error": "session_id query parameter required"})
			return
		}

		result, err := svc.ConfirmPayment(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to confirm payment"})
			return
		}

		c.JSON(200, result)
	}
}

// GetPayments lists payments for the verified identity. An explicit
// email filter must match the token's email.
func GetPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		verifiedEmail := c.GetString("email")

		filter := c.Query("email")
		if filter == "" {
			filter = verifiedEmail
		}
		if filter != verifiedEmail {
			c.JSON(403, gin.H{"error": "Cannot list payments for another email"})
			return
		}

		var payments []models.Payment
		if err := db.Where("email = ?", filter).Order("paid_at DESC").Find(&payments).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch payments"})
			return
		}

		c.JSON(200, payments)
	}
}
