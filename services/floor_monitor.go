package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/floor"
	"github.com/yeremiapane/restaurant-reservation/lifecycle"
	"github.com/yeremiapane/restaurant-reservation/models"
)

// FloorMonitor menghitung ulang tier urgency untuk booking inbound secara
// berkala dan menyiarkannya ke tampilan dapur. Murni anotasi tampilan:
// monitor tidak pernah mengubah status booking atau meja - ETA menyentuh
// nol tetap butuh aksi operator eksplisit.
type FloorMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

// PrepEntry adalah satu baris pada papan prioritas persiapan dapur
type PrepEntry struct {
	BookingID     uint                  `json:"booking_id"`
	RestaurantID  uint                  `json:"restaurant_id"`
	TableID       *uint                 `json:"table_id,omitempty"`
	GuestCount    int                   `json:"guest_count"`
	ETAMinutes    int                   `json:"eta_minutes"`
	Urgency       lifecycle.UrgencyTier `json:"urgency"`
	PreOrderTotal float64               `json:"pre_order_total"`
}

func NewFloorMonitor(db *gorm.DB) *FloorMonitor {
	return &FloorMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Minute,
	}
}

func (fm *FloorMonitor) Start() {
	go func() {
		ticker := time.NewTicker(fm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				fm.broadcastPrepBoard()
			case <-fm.StopChan:
				return
			}
		}
	}()
}

func (fm *FloorMonitor) Stop() {
	close(fm.StopChan)
}

// broadcastPrepBoard mengambil booking confirmed/arriving yang punya ETA,
// mengurutkan dari yang paling mendesak, lalu broadcast ke floor hub
func (fm *FloorMonitor) broadcastPrepBoard() {
	var bookings []models.Booking
	if err := fm.DB.
		Where("status IN ? AND eta_minutes IS NOT NULL",
			[]models.BookingStatus{models.BookingConfirmed, models.BookingArriving}).
		Find(&bookings).Error; err != nil {
		return
	}

	if len(bookings) == 0 {
		return
	}

	entries := make([]PrepEntry, 0, len(bookings))
	for _, b := range bookings {
		entries = append(entries, PrepEntry{
			BookingID:     b.ID,
			RestaurantID:  b.RestaurantID,
			TableID:       b.TableID,
			GuestCount:    b.GuestCount,
			ETAMinutes:    *b.ETAMinutes,
			Urgency:       lifecycle.ClassifyUrgency(*b.ETAMinutes),
			PreOrderTotal: b.PreOrderTotal,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return lifecycle.TierRank(entries[i].Urgency) < lifecycle.TierRank(entries[j].Urgency)
	})

	floor.BroadcastPrepUpdate(entries)
}
