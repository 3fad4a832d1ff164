package models

import "time"

type Room struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	RoomNumber    string  `gorm:"type:varchar(50);not null;uniqueIndex" json:"room_number"`
	RoomType      string  `gorm:"type:varchar(50);not null" json:"room_type"`
	PricePerNight float64 `gorm:"type:decimal(10,2);not null" json:"price_per_night"`
	// No gorm default here: a default would swallow an explicit false on insert.
	Available bool      `gorm:"not null;index" json:"available"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
