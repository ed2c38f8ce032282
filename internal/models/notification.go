package models

import "time"

const (
	RecipientDoctor  = "doctor"
	RecipientPatient = "patient"
)

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RecipientType string `gorm:"size:10;not null;index:idx_notifications_recipient" json:"recipient_type"`
	RecipientID   uint   `gorm:"not null;index:idx_notifications_recipient" json:"recipient_id"`

	Type    string `gorm:"size:50;not null" json:"type"`
	Message string `gorm:"size:500" json:"message"`

	ReadAt *time.Time `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
}
