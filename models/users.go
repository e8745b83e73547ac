package models

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey"`
	RestaurantID uint       `gorm:"not null;index"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Name         string     `gorm:"type:varchar(255); not null"`
	Email        string     `gorm:"type:varchar(255); unique;not null"`
	Password     string     `gorm:"type:varchar(255); not null"`
	Role         string     `gorm:"type:varchar(255); not null"` // admin, staff, cleaner
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
