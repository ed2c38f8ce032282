package booking

import (
	"context"
	"time"

	"github.com/clinicore/clinic-scheduler/internal/models"
)

// Repository is the storage contract of the booking core. Find* methods
// return (nil, nil) when the record is absent; Get* methods return an
// error.
type Repository interface {
	// -------- Directories --------
	GetDoctorByID(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	GetPatientByID(
		ctx context.Context,
		id uint,
	) (*models.Patient, error)

	// -------- Availability --------
	FindAvailability(
		ctx context.Context,
		doctorID uint,
		date time.Time,
	) (*models.Availability, error)

	FindAvailabilityByID(
		ctx context.Context,
		id uint,
	) (*models.Availability, error)

	ListAvailability(
		ctx context.Context,
		doctorID uint,
		from time.Time,
		to time.Time,
	) ([]models.Availability, error)

	SaveAvailability(
		ctx context.Context,
		av *models.Availability,
	) error

	DeleteAvailability(
		ctx context.Context,
		id uint,
	) error

	SetSlotBooked(
		ctx context.Context,
		availabilityID uint,
		startTime string,
		endTime string,
		booked bool,
	) error

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	FindAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	FindActiveAppointmentBySlot(
		ctx context.Context,
		doctorID uint,
		date time.Time,
		startTime string,
		endTime string,
	) (*models.Appointment, error)

	CountFreeAppointments(
		ctx context.Context,
		patientID uint,
		doctorID uint,
	) (int64, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForDoctor(
		ctx context.Context,
		doctorID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPatient(
		ctx context.Context,
		patientID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)
}
