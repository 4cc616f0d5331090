package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zapshift/zapshift-backend/internal/models"
	"gorm.io/gorm"
)

// GetRiders lists rider applications, optionally filtered by status.
func GetRiders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var riders []models.Rider
		if err := query.Find(&riders).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch riders"})
			return
		}

		c.JSON(200, riders)
	}
}

// CreateRider files a rider application. One application per email.
func CreateRider(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Phone    string `json:"phone"`
			Region   string `json:"region"`
			District string `json:"district"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var existing models.Rider
		err := db.Where("email = ?", input.Email).First(&existing).Error
		if err == nil {
			c.JSON(409, gin.H{"error": "Rider application already exists for this email"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(500, gin.H{"error": "Failed to look up rider"})
			return
		}

		rider := models.Rider{
			Name:     input.Name,
			Email:    input.Email,
			Phone:    input.Phone,
			Region:   input.Region,
			District: input.District,
			Status:   models.RiderStatusPending,
		}
		if err := db.Create(&rider).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create rider"})
			return
		}

		c.JSON(201, rider)
	}
}

// UpdateRiderStatus sets the application status. Approval promotes the
// matching users row to the rider role; that second write is best
// effort and cannot be rolled into the first one, so an approved rider
// with a stale user role is possible and logged.
func UpdateRiderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var input struct {
			Status string `json:"status" binding:"required"`
			Email  string `json:"email"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var rider models.Rider
		if err := db.First(&rider, id).Error; err != nil {
			c.JSON(404, gin.H{"error": "Rider not found"})
			return
		}

		rider.Status = input.Status
		if err := db.Save(&rider).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update rider"})
			return
		}

		if input.Status == models.RiderStatusApproved {
			email := input.Email
			if email == "" {
				email = rider.Email
			}

			result := db.Model(&models.User{}).
				Where("email = ?", email).
				Update("role", string(models.RoleRider))
			if result.Error != nil {
				log.Printf("Failed to promote user %s to rider: %v", email, result.Error)
			} else if result.RowsAffected == 0 {
				log.Printf("Approved rider %s has no matching user row", email)
			}
		}

		c.JSON(200, rider)
	}
}

// DeleteRider removes a rider application.
func DeleteRider(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var rider models.Rider
		if err := db.First(&rider, id).Error; err != nil {
			c.JSON(404, gin.H{"error": "Rider not found"})
			return
		}

		if err := db.Delete(&rider).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete rider"})
			return
		}

		c.JSON(200, gin.H{"deleted": true})
	}
}
