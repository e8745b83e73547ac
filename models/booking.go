package models

import (
	"time"
)

// BookingStatus adalah enum tertutup untuk status reservasi.
// Semua transisi divalidasi oleh package lifecycle, bukan lewat
// perbandingan string di handler.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingArriving  BookingStatus = "arriving"
	BookingSeated    BookingStatus = "seated"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no_show"
)

// IsTerminal -> status final yang tidak boleh ditransisikan lagi
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

// IsActive -> status yang masih memegang (atau akan memegang) klaim meja
func (s BookingStatus) IsActive() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingArriving:
		return true
	}
	return false
}

// Valid memastikan hanya nilai enum yang dikenal yang bisa dipersist
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingArriving,
		BookingSeated, BookingCompleted, BookingNoShow, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	RestaurantID uint          `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant    `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CustomerID   uint          `gorm:"not null;index" json:"customer_id"`
	Customer     Customer      `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"customer"`
	TableID      *uint         `gorm:"index" json:"table_id,omitempty"`
	Table        *Table        `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table,omitempty"`
	BookingDate  string        `gorm:"type:varchar(10);not null;index" json:"booking_date"` // YYYY-MM-DD
	TimeSlot     string        `gorm:"type:varchar(20);not null" json:"time_slot"`
	GuestCount   int           `gorm:"not null" json:"guest_count"`
	Status       BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// Pre-order opsional, dibayar & disiapkan sebelum tamu datang
	PreOrderItems []PreOrderItem `gorm:"foreignKey:BookingID" json:"pre_order_items,omitempty"`
	PreOrderTotal float64        `gorm:"type:decimal(10,2);not null;default:0.00" json:"pre_order_total"`

	SpecialRequest string `gorm:"type:text" json:"special_request,omitempty"`
	ETAMinutes     *int   `json:"eta_minutes,omitempty"`

	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CancelReason string     `gorm:"type:varchar(255)" json:"cancel_reason,omitempty"`
}

type PreOrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"not null;index" json:"booking_id"`
	// Omitting Booking field from JSON to avoid recursive nesting
	Booking   Booking   `gorm:"foreignKey:BookingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ItemName  string    `gorm:"type:varchar(100);not null" json:"item_name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
