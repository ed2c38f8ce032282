package models

import "time"

type PatientSubscription struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint    `gorm:"not null;index" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PlanID uint `gorm:"not null;index" json:"plan_id"`
	Plan   Plan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"plan"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null;index" json:"end_date"`

	Status string `gorm:"size:20;default:'active';index" json:"status"`

	PriceCents int64 `gorm:"not null" json:"price_cents"`

	// Used + Left is conserved across booking and cancellation; both sides
	// of the pair always move together in a single UPDATE.
	AppointmentsUsed int `gorm:"default:0" json:"appointments_used"`
	AppointmentsLeft int `gorm:"default:0" json:"appointments_left"`

	PaymentID string `gorm:"size:64" json:"payment_id"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
