package database

import (
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"gorm.io/gorm"
)

// EnsureIndexes memverifikasi index yang dibutuhkan invariant lantai setelah
// AutoMigrate: nomor meja unik per restoran (guard DuplicateNumber) dan
// lookup booking aktif per meja (guard penghapusan meja).
func EnsureIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	if !migrator.HasIndex(&models.Table{}, "idx_restaurant_table_number") {
		if err := migrator.CreateIndex(&models.Table{}, "idx_restaurant_table_number"); err != nil {
			utils.ErrorLogger.Printf("Error creating table number index: %v", err)
			return err
		}
	}

	if !migrator.HasIndex(&models.Booking{}, "TableID") {
		if err := migrator.CreateIndex(&models.Booking{}, "TableID"); err != nil {
			utils.ErrorLogger.Printf("Error creating booking table index: %v", err)
			return err
		}
	}

	utils.InfoLogger.Println("Schema indexes verified")
	return nil
}
