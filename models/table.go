package models

import "time"

// TableStatus adalah enum tertutup untuk status meja fisik.
type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableReserved    TableStatus = "reserved"
	TableOccupied    TableStatus = "occupied"
	TableCleaning    TableStatus = "cleaning"
	TableMaintenance TableStatus = "maintenance"
)

// Holding -> meja sedang dipegang oleh satu booking aktif
func (s TableStatus) Holding() bool {
	return s == TableReserved || s == TableOccupied
}

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableReserved, TableOccupied, TableCleaning, TableMaintenance:
		return true
	}
	return false
}

type Table struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;uniqueIndex:idx_restaurant_table_number" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TableNumber  string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_restaurant_table_number" json:"table_number"`
	Name         string     `gorm:"type:varchar(100)" json:"name,omitempty"`
	TableType    string     `gorm:"type:varchar(50)" json:"table_type,omitempty"` // square, round, booth, ...
	Capacity     int        `gorm:"not null;default:2" json:"capacity"`

	Status TableStatus `gorm:"type:varchar(50);not null;default:'available'" json:"status"`

	// Back-reference ke booking aktif; harus nil selama
	// status di luar {reserved, occupied}
	CurrentBookingID *uint `gorm:"index" json:"current_booking_id,omitempty"`

	// Posisi pada denah lantai (opsional)
	Floor string `gorm:"type:varchar(50)" json:"floor,omitempty"`
	PosX  *int   `json:"pos_x,omitempty"`
	PosY  *int   `json:"pos_y,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
