package repositories

import (
	"fmt"

	"github.com/anonto42/tweeter/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the relational schema
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Artist{},
		&models.UserFollow{},
		&models.ArtistFollow{},
		&models.Notification{},
		&models.Tweet{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	return nil
}
