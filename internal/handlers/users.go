package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/zapshift/zapshift-backend/internal/models"
	"gorm.io/gorm"
)

// CreateUser registers an email on first sight. Registration is
// idempotent: an already-known email returns the existing row untouched.
func CreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
			Role  string `json:"role" binding:"omitempty,oneof=user rider admin"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var existing models.User
		err := db.Where("email = ?", input.Email).First(&existing).Error
		if err == nil {
			c.JSON(200, gin.H{
				"message":  "user already exists",
				"inserted": false,
				"user":     existing,
			})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(500, gin.H{"error": "Failed to look up user"})
			return
		}

		role := input.Role
		if role == "" {
			role = string(models.RoleUser)
		}

		user := models.User{
			Email: input.Email,
			Role:  role,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(201, gin.H{
			"inserted": true,
			"user":     user,
		})
	}
}

// GetUserRole looks up the role for an email. Unknown emails report the
// default role so the client app can render without a registration round
// trip.
func GetUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(200, gin.H{"role": string(models.RoleUser)})
			return
		}

		c.JSON(200, gin.H{"role": user.Role})
	}
}
