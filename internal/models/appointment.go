package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint    `gorm:"not null;index" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DoctorID uint   `gorm:"not null;index" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	// Date is the UTC day boundary; StartTime/EndTime are "HH:mm" on that
	// day. A partial unique index over (doctor_id, date, start_time,
	// end_time) excluding cancelled rows guards against double booking —
	// see db.NewDB.
	Date      time.Time `gorm:"not null" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	IsFreeBooking bool      `gorm:"default:false" json:"is_free_booking"`
	BookingTime   time.Time `json:"booking_time"`

	PlanID *uint `json:"plan_id"`

	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`
	PrescriptionID     *uint  `json:"prescription_id"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
