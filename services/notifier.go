package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

const (
	ExchangeName = "reservations"
	ExchangeKind = "topic"
)

// Notifier mengirim event booking ke kanal notifikasi keluar (email/SMS
// worker di belakang RabbitMQ). Fire-and-forget: kegagalan publish hanya
// dicatat, tidak pernah membatalkan transisi yang sudah commit.
type Notifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

var (
	notifier   *Notifier
	notifierMu sync.RWMutex
)

// InitNotifier membuka koneksi RabbitMQ. URL kosong berarti notifikasi
// dimatikan (mis. saat test atau development lokal).
func InitNotifier(url string) error {
	if url == "" {
		utils.InfoLogger.Println("RABBITMQ_URL not set, outward notifications disabled")
		return nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	notifierMu.Lock()
	notifier = &Notifier{conn: conn, channel: ch}
	notifierMu.Unlock()

	utils.InfoLogger.Printf("Notifier connected, exchange=%s", ExchangeName)
	return nil
}

// CloseNotifier menutup koneksi saat shutdown
func CloseNotifier() {
	notifierMu.Lock()
	defer notifierMu.Unlock()
	if notifier == nil {
		return
	}
	if notifier.channel != nil {
		notifier.channel.Close()
	}
	if notifier.conn != nil {
		notifier.conn.Close()
	}
	notifier = nil
}

// bookingEvent adalah payload yang dikirim ke worker notifikasi
type bookingEvent struct {
	EventType    string               `json:"event_type"`
	BookingID    uint                 `json:"booking_id"`
	RestaurantID uint                 `json:"restaurant_id"`
	CustomerID   uint                 `json:"customer_id"`
	Status       models.BookingStatus `json:"status"`
	TableID      *uint                `json:"table_id,omitempty"`
	BookingDate  string               `json:"booking_date"`
	TimeSlot     string               `json:"time_slot"`
	GuestCount   int                  `json:"guest_count"`
	OccurredAt   time.Time            `json:"occurred_at"`
}

// NotifyBookingEvent mem-publish event transisi booking. Aman dipanggil
// saat notifier belum diinisialisasi.
func NotifyBookingEvent(routingKey string, booking *models.Booking) {
	notifierMu.RLock()
	n := notifier
	notifierMu.RUnlock()
	if n == nil {
		return
	}

	payload := bookingEvent{
		EventType:    routingKey,
		BookingID:    booking.ID,
		RestaurantID: booking.RestaurantID,
		CustomerID:   booking.CustomerID,
		Status:       booking.Status,
		TableID:      booking.TableID,
		BookingDate:  booking.BookingDate,
		TimeSlot:     booking.TimeSlot,
		GuestCount:   booking.GuestCount,
		OccurredAt:   time.Now(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		utils.ErrorLogger.Printf("notifier: marshal payload: %v", err)
		return
	}

	if err := n.channel.Publish(
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		utils.ErrorLogger.Printf("notifier: publish %s for booking %d: %v", routingKey, booking.ID, err)
		return
	}

	utils.InfoLogger.Printf("Notification published: %s booking=%d", routingKey, booking.ID)
}
