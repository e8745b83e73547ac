package lifecycle

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

// manualStatuses adalah satu-satunya status yang boleh dipasang operator
// secara langsung. reserved dan occupied hanya bisa dicapai lewat transisi
// booking supaya back-reference meja tidak pernah bohong.
var manualStatuses = map[models.TableStatus]bool{
	models.TableAvailable:   true,
	models.TableCleaning:    true,
	models.TableMaintenance: true,
}

// OverrideTableStatus -> jalur manual operator (maintenance, cleaning =>
// available, dst). Selalu diizinkan dan menghapus back-reference jika ada.
func (co *Coordinator) OverrideTableStatus(ctx context.Context, restaurantID, tableID uint, status models.TableStatus) (*models.Table, error) {
	if !manualStatuses[status] {
		return nil, ErrInvalidTableStatus
	}

	var table models.Table
	err := co.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND restaurant_id = ?", tableID, restaurantID).First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			utils.ErrorLogger.Printf("override: load table %d: %v", tableID, err)
			return ErrUnavailable
		}

		table.Status = status
		table.CurrentBookingID = nil
		table.UpdatedAt = time.Now()
		if err := tx.Save(&table).Error; err != nil {
			utils.ErrorLogger.Printf("override: table write failed: %v", err)
			return ErrUnavailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// DeleteTable menghapus meja jika tidak ada booking aktif yang
// mereferensikannya. Booking terminal disimpan untuk riwayat sehingga
// tidak menghalangi penghapusan.
func (co *Coordinator) DeleteTable(ctx context.Context, restaurantID, tableID uint) error {
	return co.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Where("id = ? AND restaurant_id = ?", tableID, restaurantID).First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			utils.ErrorLogger.Printf("delete: load table %d: %v", tableID, err)
			return ErrUnavailable
		}

		var active int64
		if err := tx.Model(&models.Booking{}).
			Where("table_id = ? AND status IN ?", tableID, []models.BookingStatus{
				models.BookingPending, models.BookingConfirmed,
				models.BookingArriving, models.BookingSeated,
			}).
			Count(&active).Error; err != nil {
			utils.ErrorLogger.Printf("delete: count active bookings: %v", err)
			return ErrUnavailable
		}
		if active > 0 {
			return ErrTableHasActiveBookings
		}

		if err := tx.Delete(&table).Error; err != nil {
			utils.ErrorLogger.Printf("delete: table %d: %v", tableID, err)
			return ErrUnavailable
		}
		return nil
	})
}

// CheckDuplicateNumber -> nomor meja harus unik per restoran. excludeID
// dipakai saat update supaya meja tidak konflik dengan dirinya sendiri.
func CheckDuplicateNumber(db *gorm.DB, restaurantID uint, tableNumber string, excludeID uint) error {
	var count int64
	q := db.Model(&models.Table{}).
		Where("restaurant_id = ? AND table_number = ?", restaurantID, tableNumber)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("duplicate check: %v", err)
		return ErrUnavailable
	}
	if count > 0 {
		return ErrDuplicateTableNumber
	}
	return nil
}
