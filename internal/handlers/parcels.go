package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zapshift/zapshift-backend/internal/models"
	"github.com/zapshift/zapshift-backend/internal/services"
	"gorm.io/gorm"
)

// CreateParcel books a parcel. The server stamps the creation time and
// every parcel starts unpaid with no tracking id.
func CreateParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name            string  `json:"name" binding:"required"`
			Type            string  `json:"type" binding:"required,oneof=document non-document"`
			WeightKG        float64 `json:"weightKg" binding:"omitempty,gt=0"`
			SenderEmail     string  `json:"senderEmail" binding:"required,email"`
			SenderAddress   string  `json:"senderAddress"`
			ReceiverName    string  `json:"receiverName"`
			ReceiverAddress string  `json:"receiverAddress"`
			Cost            float64 `json:"cost" binding:"required,gt=0"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		parcel := models.Parcel{
			Name:            input.Name,
			Type:            input.Type,
			WeightKG:        input.WeightKG,
			SenderEmail:     input.SenderEmail,
			SenderAddress:   input.SenderAddress,
			ReceiverName:    input.ReceiverName,
			ReceiverAddress: input.ReceiverAddress,
			Cost:            input.Cost,
			PaymentStatus:   models.PaymentStatusUnpaid,
			DeliveryStatus:  models.DeliveryStatusNotCollected,
		}
		if err := db.Create(&parcel).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create parcel"})
			return
		}

		c.JSON(201, parcel)
	}
}

// GetParcels lists parcels newest first, optionally filtered by sender.
func GetParcels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if email := c.Query("email"); email != "" {
			query = query.Where("sender_email = ?", email)
		}

		var parcels []models.Parcel
		if err := query.Find(&parcels).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch parcels"})
			return
		}

		c.JSON(200, parcels)
	}
}

// GetParcel fetches one parcel by id.
func GetParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var parcel models.Parcel
		if err := db.First(&parcel, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Parcel not found"})
			return
		}

		c.JSON(200, parcel)
	}
}

// DeleteParcel removes a parcel and, best effort, its stored photo.
func DeleteParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var parcel models.Parcel
		if err := db.First(&parcel, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Parcel not found"})
			return
		}

		if parcel.PhotoURL != "" {
			if err := services.DeleteParcelPhoto(parcel.PhotoURL); err != nil {
				log.Printf("Failed to delete photo for parcel %d: %v", parcel.ID, err)
			}
		}

		if services.RedisClient != nil && parcel.TrackingID != "" {
			if err := services.InvalidateTrackedParcel(c.Request.Context(), parcel.TrackingID); err != nil {
				log.Printf("Failed to drop tracking cache for parcel %d: %v", parcel.ID, err)
			}
		}

		if err := db.Delete(&parcel).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete parcel"})
			return
		}

		c.JSON(200, gin.H{"deleted": true})
	}
}

// UploadParcelPhoto attaches a photo to an existing parcel.
func UploadParcelPhoto(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var parcel models.Parcel
		if err := db.First(&parcel, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Parcel not found"})
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(400, gin.H{"error": "Parcel photo is required"})
			return
		}

		photoURL, err := services.UploadParcelPhoto(file)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload photo", "details": err.Error()})
			return
		}

		if err := db.Model(&parcel).Update("photo_url", photoURL).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save photo reference"})
			return
		}

		c.JSON(200, gin.H{"photoUrl": services.GetPhotoURL(photoURL)})
	}
}

// TrackParcel is the public tracking lookup. Hits are cached in Redis
// for a few minutes; the cache is skipped entirely when Redis is down.
func TrackParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		trackingID := c.Param("trackingId")

		if services.RedisClient != nil {
			if parcel, err := services.GetTrackedParcel(c.Request.Context(), trackingID); err == nil {
				c.JSON(200, parcel)
				return
			}
		}

		var parcel models.Parcel
		if err := db.Where("tracking_id = ?", trackingID).First(&parcel).Error; err != nil {
			c.JSON(404, gin.H{"error": "No parcel with this tracking id"})
			return
		}

		if services.RedisClient != nil {
			if err := services.CacheTrackedParcel(c.Request.Context(), trackingID, &parcel); err != nil {
				log.Printf("Failed to cache tracking lookup %s: %v", trackingID, err)
			}
		}

		c.JSON(200, parcel)
	}
}
