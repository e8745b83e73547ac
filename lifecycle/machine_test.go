package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/restaurant-reservation/models"
)

func TestHappyPathTransitions(t *testing.T) {
	assert.True(t, CanTransition(models.BookingPending, models.BookingConfirmed))
	assert.True(t, CanTransition(models.BookingConfirmed, models.BookingArriving))
	assert.True(t, CanTransition(models.BookingArriving, models.BookingSeated))
	assert.True(t, CanTransition(models.BookingSeated, models.BookingCompleted))

	// Arriving boleh dilewati: staf bisa langsung mendudukkan tamu
	assert.True(t, CanTransition(models.BookingConfirmed, models.BookingSeated))
}

func TestEscapeHatches(t *testing.T) {
	// Cancel sah dari semua status non-terminal, termasuk seated
	for _, from := range []models.BookingStatus{
		models.BookingPending,
		models.BookingConfirmed,
		models.BookingArriving,
		models.BookingSeated,
	} {
		assert.True(t, CanTransition(from, models.BookingCancelled), "cancel from %s", from)
	}

	// No-show hanya untuk tamu yang belum duduk
	assert.True(t, CanTransition(models.BookingConfirmed, models.BookingNoShow))
	assert.True(t, CanTransition(models.BookingArriving, models.BookingNoShow))
	assert.False(t, CanTransition(models.BookingPending, models.BookingNoShow))
	assert.False(t, CanTransition(models.BookingSeated, models.BookingNoShow))
}

func TestForbiddenTransitions(t *testing.T) {
	// pending tidak boleh loncat melewati confirmed
	assert.False(t, CanTransition(models.BookingPending, models.BookingArriving))
	assert.False(t, CanTransition(models.BookingPending, models.BookingSeated))
	assert.False(t, CanTransition(models.BookingPending, models.BookingCompleted))

	// Tidak ada jalan mundur
	assert.False(t, CanTransition(models.BookingConfirmed, models.BookingPending))
	assert.False(t, CanTransition(models.BookingSeated, models.BookingArriving))
	assert.False(t, CanTransition(models.BookingCompleted, models.BookingSeated))
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	terminals := []models.BookingStatus{
		models.BookingCompleted,
		models.BookingCancelled,
		models.BookingNoShow,
	}

	all := []models.BookingStatus{
		models.BookingPending,
		models.BookingConfirmed,
		models.BookingArriving,
		models.BookingSeated,
		models.BookingCompleted,
		models.BookingCancelled,
		models.BookingNoShow,
	}

	for _, from := range terminals {
		assert.Empty(t, NextStates(from), "terminal %s should have no outgoing edges", from)
		for _, to := range all {
			assert.False(t, CanTransition(from, to), "%s -> %s must be rejected", from, to)
		}
	}
}

func TestEveryStatusHasDefinedEdges(t *testing.T) {
	// Setiap nilai enum harus punya entry di tabel transisi, walau kosong
	for _, s := range []models.BookingStatus{
		models.BookingPending,
		models.BookingConfirmed,
		models.BookingArriving,
		models.BookingSeated,
		models.BookingCompleted,
		models.BookingCancelled,
		models.BookingNoShow,
	} {
		_, ok := transitions[s]
		assert.True(t, ok, "status %s missing from transition table", s)
	}
}

func TestCheckTransitionError(t *testing.T) {
	err := checkTransition(models.BookingCompleted, models.BookingSeated)
	assert.Error(t, err)

	var ite *InvalidTransitionError
	assert.ErrorAs(t, err, &ite)
	assert.Equal(t, models.BookingCompleted, ite.From)
	assert.Equal(t, models.BookingSeated, ite.To)
	assert.True(t, IsInvalidTransition(err))
}
