package lifecycle

import "github.com/yeremiapane/restaurant-reservation/models"

// transitions adalah satu-satunya sumber kebenaran untuk graph status booking.
// Jalur happy path berjalan maju: pending -> confirmed -> arriving -> seated
// -> completed. cancelled dan no_show adalah pintu keluar; keduanya hanya
// melepas resource, tidak pernah mengambil, sehingga aman dari status
// non-terminal mana pun. Status terminal tidak punya edge keluar.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending: {
		models.BookingConfirmed,
		models.BookingCancelled,
	},
	models.BookingConfirmed: {
		models.BookingArriving,
		models.BookingSeated,
		models.BookingCancelled,
		models.BookingNoShow,
	},
	models.BookingArriving: {
		models.BookingSeated,
		models.BookingCancelled,
		models.BookingNoShow,
	},
	models.BookingSeated: {
		models.BookingCompleted,
		models.BookingCancelled,
	},
	models.BookingCompleted: {},
	models.BookingCancelled: {},
	models.BookingNoShow:    {},
}

// CanTransition -> apakah edge from->to ada di graph
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStates mengembalikan semua status tujuan yang sah dari suatu status
func NextStates(from models.BookingStatus) []models.BookingStatus {
	return transitions[from]
}

// checkTransition mengembalikan InvalidTransitionError jika edge tidak ada
func checkTransition(from, to models.BookingStatus) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}
