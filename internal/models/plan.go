package models

import "time"

// Plan is a doctor-defined prepaid package of appointments.
type Plan struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint   `gorm:"not null;index" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name             string `gorm:"size:100;not null" json:"name"`
	PriceCents       int64  `gorm:"not null" json:"price_cents"`
	AppointmentCount int    `gorm:"not null" json:"appointment_count"`
	DurationDays     int    `gorm:"not null" json:"duration_days"`
	Active           bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
