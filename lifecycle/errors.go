// Package lifecycle memvalidasi dan menerapkan transisi status booking,
// termasuk efek sampingnya ke status meja. Semua mutasi booking/meja yang
// menyentuh dua entitas sekaligus harus lewat package ini supaya invariant
// "satu meja maksimal dipegang satu booking aktif" tetap terjaga.
//
// Sentinel error di bawah dipakai controller untuk memetakan kegagalan ke
// HTTP status yang tepat (404 untuk not found, 409 untuk konflik, dst).
package lifecycle

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-reservation/models"
)

var (
	// ErrBookingNotFound -> booking tidak ada atau bukan milik restoran pemanggil
	ErrBookingNotFound = errors.New("booking not found")
	// ErrTableNotFound -> meja tidak ada atau bukan milik restoran pemanggil
	ErrTableNotFound = errors.New("table not found")
	// ErrTableUnavailable -> meja sedang reserved/occupied oleh booking lain
	ErrTableUnavailable = errors.New("table is not available")
	// ErrDuplicateTableNumber -> nomor meja sudah dipakai di restoran yang sama
	ErrDuplicateTableNumber = errors.New("table number already exists for this restaurant")
	// ErrTableHasActiveBookings -> meja masih direferensikan booking aktif,
	// batalkan/selesaikan dulu sebelum menghapus
	ErrTableHasActiveBookings = errors.New("table still has active bookings, cancel or complete them first")
	// ErrInvalidTableStatus -> status manual yang diminta tidak dikenal atau
	// hanya boleh diubah lewat lifecycle booking
	ErrInvalidTableStatus = errors.New("invalid table status")
	// ErrUnavailable -> kegagalan persistence yang tidak bisa di-retry dengan aman
	ErrUnavailable = errors.New("service temporarily unavailable")
)

// InvalidTransitionError membawa status sekarang dan status yang diminta
// supaya UI bisa menjelaskan konfliknya.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// IsInvalidTransition membantu controller mengecek tipe error tanpa assertion manual
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}
