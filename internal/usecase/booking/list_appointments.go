package booking

import (
	"context"
	"time"

	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	domain "github.com/clinicore/clinic-scheduler/internal/domain/booking"
	"github.com/clinicore/clinic-scheduler/internal/dto"
	"github.com/clinicore/clinic-scheduler/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) ForDoctor(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
) ([]dto.AppointmentListDTO, error) {

	aps, err := uc.repo.ListAppointmentsForDoctor(
		ctx, doctorID, dateutil.DayStartUTC(from), dateutil.DayStartUTC(to),
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, toListDTO(ap, ap.Patient.Name))
	}
	return out, nil
}

func (uc *ListAppointments) ForPatient(
	ctx context.Context,
	patientID uint,
	from time.Time,
	to time.Time,
) ([]dto.AppointmentListDTO, error) {

	aps, err := uc.repo.ListAppointmentsForPatient(
		ctx, patientID, dateutil.DayStartUTC(from), dateutil.DayStartUTC(to),
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, toListDTO(ap, ap.Doctor.Name))
	}
	return out, nil
}

func toListDTO(ap models.Appointment, counterparty string) dto.AppointmentListDTO {
	return dto.AppointmentListDTO{
		ID:           ap.ID,
		Date:         ap.Date,
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		Status:       ap.Status,
		IsFree:       ap.IsFreeBooking,
		Counterparty: counterparty,
	}
}
