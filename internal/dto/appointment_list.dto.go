package dto

import "time"

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	Date         time.Time `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Status       string    `json:"status"`
	IsFree       bool      `json:"is_free"`
	Counterparty string    `json:"counterparty"`
}
