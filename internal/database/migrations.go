package database

import (
	"github.com/zapshift/zapshift-backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations creates the four tables. They are deliberately
// independent: no foreign keys, no cross-table constraints. Consistency
// between them (rider approval -> user role, parcel -> payment) is
// maintained by the handlers.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Rider{},
		&models.Parcel{},
		&models.Payment{},
	)
	if err != nil {
		return err
	}

	// Older deployments created users before the role column had a default
	if db.Migrator().HasTable(&models.User{}) {
		if err := db.Exec(`UPDATE users SET role = 'user' WHERE role IS NULL OR role = ''`).Error; err != nil {
			return err
		}
	}

	return nil
}
