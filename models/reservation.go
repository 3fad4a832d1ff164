package models

import (
	"fmt"
	"strings"
	"time"
)

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
	// StatusCompleted is part of the stored vocabulary but nothing transitions into it yet.
	StatusCompleted ReservationStatus = "COMPLETED"
)

func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
	return status, nil
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// HoldsRoom reports whether a reservation in this status keeps its room unavailable.
func (s ReservationStatus) HoldsRoom() bool {
	switch s {
	case StatusConfirmed:
		return true
	case StatusCancelled, StatusCompleted:
		return false
	default:
		return false
	}
}

type Reservation struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	RoomID       uint              `gorm:"not null;index" json:"room_id"`
	Room         Room              `gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"room"`
	CustomerID   uint              `gorm:"not null;index" json:"customer_id"`
	Customer     Customer          `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"customer"`
	CheckInDate  Date              `gorm:"type:date;not null" json:"check_in_date"`
	CheckOutDate Date              `gorm:"type:date;not null" json:"check_out_date"`
	TotalPrice   float64           `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status       ReservationStatus `gorm:"type:varchar(20);not null;default:'CONFIRMED';index" json:"status"`
	CreatedAt    time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updated_at"`
}

// Nights is the pricing multiplier for the stay.
func (r *Reservation) Nights() int {
	return r.CheckInDate.DaysUntil(r.CheckOutDate)
}
