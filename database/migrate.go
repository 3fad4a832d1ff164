package database

import (
	"github.com/yeremiapane/hotel-reservation/models"
	"github.com/yeremiapane/hotel-reservation/utils"
	"gorm.io/gorm"
)

// Models lists every table in dependency order: rooms and customers before reservations.
func Models() []interface{} {
	return []interface{}{
		&models.Room{},
		&models.Customer{},
		&models.Reservation{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	if utils.InfoLogger != nil {
		utils.InfoLogger.Println("AutoMigrate completed.")
	}
	return nil
}
