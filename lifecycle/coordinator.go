package lifecycle

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

// Coordinator menerapkan transisi lifecycle booking beserta efek sampingnya
// ke meja dalam satu transaksi. Acquire meja memakai guarded UPDATE
// (WHERE status NOT IN reserved/occupied) dan mengecek RowsAffected sebelum
// commit write booking, sehingga dua confirm bersamaan di meja yang sama
// tidak mungkin dua-duanya sukses.
type Coordinator struct {
	DB *gorm.DB
}

func NewCoordinator(db *gorm.DB) *Coordinator {
	return &Coordinator{DB: db}
}

// statusHolding dipakai sebagai guard acquire: meja yang sedang dipegang
// booking lain tidak boleh diambil.
var statusHolding = []models.TableStatus{models.TableReserved, models.TableOccupied}

// Confirm -> pending => confirmed. Satu-satunya transisi yang mengambil
// resource, sehingga satu-satunya yang punya precondition non-trivial.
func (co *Coordinator) Confirm(ctx context.Context, restaurantID, bookingID uint, tableID *uint) (*models.Booking, error) {
	var result *models.Booking

	err := co.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := co.loadBooking(tx, restaurantID, bookingID)
		if err != nil {
			return err
		}

		if err := checkTransition(booking.Status, models.BookingConfirmed); err != nil {
			return err
		}

		if tableID != nil {
			// Guarded acquire: hanya sukses jika meja milik restoran ini dan
			// tidak sedang reserved/occupied. RowsAffected == 0 berarti kalah.
			res := tx.Model(&models.Table{}).
				Where("id = ? AND restaurant_id = ? AND status NOT IN ?", *tableID, restaurantID, statusHolding).
				Updates(map[string]interface{}{
					"status":             models.TableReserved,
					"current_booking_id": booking.ID,
					"updated_at":         time.Now(),
				})
			if res.Error != nil {
				utils.ErrorLogger.Printf("confirm: table acquire failed: %v", res.Error)
				return ErrUnavailable
			}
			if res.RowsAffected == 0 {
				// Bedakan meja tidak ada vs meja sedang dipegang
				var count int64
				tx.Model(&models.Table{}).
					Where("id = ? AND restaurant_id = ?", *tableID, restaurantID).
					Count(&count)
				if count == 0 {
					return ErrTableNotFound
				}
				return ErrTableUnavailable
			}
			booking.TableID = tableID
		}

		now := time.Now()
		booking.Status = models.BookingConfirmed
		booking.ConfirmedAt = &now
		booking.UpdatedAt = now
		if err := tx.Save(booking).Error; err != nil {
			utils.ErrorLogger.Printf("confirm: booking write failed: %v", err)
			return ErrUnavailable
		}

		result = booking
		return nil
	})

	return result, err
}

// Cancel -> cancelled dari status non-terminal mana pun. Melepas meja jika
// booking memegang satu; tidak pernah mengambil resource sehingga tidak
// butuh guard tambahan.
func (co *Coordinator) Cancel(ctx context.Context, restaurantID, bookingID uint, reason string) (*models.Booking, error) {
	var result *models.Booking

	err := co.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := co.loadBooking(tx, restaurantID, bookingID)
		if err != nil {
			return err
		}

		if err := checkTransition(booking.Status, models.BookingCancelled); err != nil {
			return err
		}

		if booking.TableID != nil {
			if err := co.releaseTable(tx, *booking.TableID, booking.ID, models.TableAvailable); err != nil {
				return err
			}
		}

		now := time.Now()
		booking.Status = models.BookingCancelled
		booking.CancelledAt = &now
		booking.CancelReason = reason
		booking.UpdatedAt = now
		if err := tx.Save(booking).Error; err != nil {
			utils.ErrorLogger.Printf("cancel: booking write failed: %v", err)
			return ErrUnavailable
		}

		result = booking
		return nil
	})

	return result, err
}

// UpdateStatus menangani mark-arriving, mark-seated, mark-completed dan
// mark-no-show beserta efek samping meja masing-masing.
func (co *Coordinator) UpdateStatus(ctx context.Context, restaurantID, bookingID uint, next models.BookingStatus, etaMinutes *int) (*models.Booking, error) {
	var result *models.Booking

	err := co.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := co.loadBooking(tx, restaurantID, bookingID)
		if err != nil {
			return err
		}

		if err := checkTransition(booking.Status, next); err != nil {
			return err
		}

		switch next {
		case models.BookingArriving:
			// Tidak ada efek samping meja; ETA opsional untuk prioritas dapur
			if etaMinutes != nil {
				booking.ETAMinutes = etaMinutes
			}

		case models.BookingSeated:
			if booking.TableID != nil {
				// Back-reference dipertahankan selama tamu duduk
				res := tx.Model(&models.Table{}).
					Where("id = ? AND current_booking_id = ?", *booking.TableID, booking.ID).
					Updates(map[string]interface{}{
						"status":     models.TableOccupied,
						"updated_at": time.Now(),
					})
				if res.Error != nil {
					utils.ErrorLogger.Printf("seat: table write failed: %v", res.Error)
					return ErrUnavailable
				}
			}

		case models.BookingCompleted:
			if booking.TableID != nil {
				if err := co.releaseTable(tx, *booking.TableID, booking.ID, models.TableCleaning); err != nil {
					return err
				}
			}

		case models.BookingNoShow:
			if booking.TableID != nil {
				if err := co.releaseTable(tx, *booking.TableID, booking.ID, models.TableAvailable); err != nil {
					return err
				}
			}

		default:
			return &InvalidTransitionError{From: booking.Status, To: next}
		}

		booking.Status = next
		booking.UpdatedAt = time.Now()
		if err := tx.Save(booking).Error; err != nil {
			utils.ErrorLogger.Printf("update status: booking write failed: %v", err)
			return ErrUnavailable
		}

		result = booking
		return nil
	})

	return result, err
}

// releaseTable melepas meja ke status tujuan dan menghapus back-reference.
// Guard current_booking_id memastikan kita tidak menimpa klaim booking lain.
func (co *Coordinator) releaseTable(tx *gorm.DB, tableID, bookingID uint, to models.TableStatus) error {
	res := tx.Model(&models.Table{}).
		Where("id = ? AND current_booking_id = ?", tableID, bookingID).
		Updates(map[string]interface{}{
			"status":             to,
			"current_booking_id": nil,
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		utils.ErrorLogger.Printf("release table %d: %v", tableID, res.Error)
		return ErrUnavailable
	}
	return nil
}

// loadBooking membaca booking milik restoran pemanggil. Read di-retry satu
// kali dengan backoff pendek untuk error transient; write tidak pernah
// di-retry supaya tidak menduplikasi efek samping.
func (co *Coordinator) loadBooking(tx *gorm.DB, restaurantID, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.Where("id = ? AND restaurant_id = ?", bookingID, restaurantID).First(&booking).Error
	if err == nil {
		return &booking, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}

	time.Sleep(100 * time.Millisecond)
	err = tx.Where("id = ? AND restaurant_id = ?", bookingID, restaurantID).First(&booking).Error
	if err == nil {
		return &booking, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	utils.ErrorLogger.Printf("load booking %d: %v", bookingID, err)
	return nil, ErrUnavailable
}
