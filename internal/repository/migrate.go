package repository

import (
	"eventhub/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates every table the API reads or writes. Used by
// cmd/api on boot and by the test suites against in-memory SQLite.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&refreshTokenModel{},
		&domain.Calendar{},
		&domain.Event{},
		&domain.Subscription{},
	)
}
