package models

import "time"

// TimeSlot is one bookable interval inside a day's availability. Times are
// "HH:mm" 24-hour strings interpreted on the record's UTC day.
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsBooked  bool   `json:"is_booked"`
}

type TimeSlots []TimeSlot

// Availability holds the slots a doctor declared for one UTC calendar day.
// One row per (doctor, date); the row is deleted once its slot list empties.
type Availability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint   `gorm:"not null;uniqueIndex:ux_availability_doctor_date" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date time.Time `gorm:"not null;uniqueIndex:ux_availability_doctor_date" json:"date"`

	Slots TimeSlots `gorm:"type:jsonb;serializer:json" json:"time_slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
