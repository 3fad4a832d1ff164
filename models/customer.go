package models

import "time"

type Customer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FullName      string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email         string    `gorm:"type:varchar(255)" json:"email"`
	PhoneNumber   string    `gorm:"type:varchar(50)" json:"phone_number"`
	LoyaltyPoints int       `gorm:"not null;default:0" json:"loyalty_points"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
