package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every persisted model,
// including the unique indexes the ledger and review store rely on.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&bookedDateModel{},
		&bookingModel{},
		&reviewModel{},
	)
}
