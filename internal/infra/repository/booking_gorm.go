package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/clinicore/clinic-scheduler/internal/domain/booking"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Directories
// --------------------------------------------------

func (r *BookingGormRepository) GetDoctorByID(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *BookingGormRepository) GetPatientByID(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) FindAvailability(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) (*models.Availability, error) {

	var av models.Availability
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		First(&av).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *BookingGormRepository) FindAvailabilityByID(
	ctx context.Context,
	id uint,
) (*models.Availability, error) {

	var av models.Availability
	err := r.db.WithContext(ctx).First(&av, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *BookingGormRepository) ListAvailability(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
) ([]models.Availability, error) {

	var avs []models.Availability
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date >= ? AND date <= ?", doctorID, from, to).
		Order("date ASC").
		Find(&avs).Error; err != nil {
		return nil, err
	}
	return avs, nil
}

func (r *BookingGormRepository) SaveAvailability(
	ctx context.Context,
	av *models.Availability,
) error {
	return r.db.WithContext(ctx).Save(av).Error
}

func (r *BookingGormRepository) DeleteAvailability(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Availability{}, id).Error
}

// SetSlotBooked flips one slot's booked flag under a row lock. The flag is
// a read optimization; the appointment table remains the source of truth.
func (r *BookingGormRepository) SetSlotBooked(
	ctx context.Context,
	availabilityID uint,
	startTime string,
	endTime string,
	booked bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var av models.Availability
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&av, availabilityID).Error; err != nil {
			return err
		}

		idx := domain.IndexOfSlot(av.Slots, startTime, endTime)
		if idx < 0 {
			return httperr.ErrNotFound("slot_not_found", "Slot no longer exists on this availability.")
		}

		av.Slots[idx].IsBooked = booked

		return tx.Model(&models.Availability{}).
			Where("id = ?", av.ID).
			Update("slots", av.Slots).Error
	})
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) FindAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).First(&ap, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) FindActiveAppointmentBySlot(
	ctx context.Context,
	doctorID uint,
	date time.Time,
	startTime string,
	endTime string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND date = ? AND start_time = ? AND end_time = ? AND status <> ?",
			doctorID, date, startTime, endTime, string(domain.StatusCancelled),
		).
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) CountFreeAppointments(
	ctx context.Context,
	patientID uint,
	doctorID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"patient_id = ? AND doctor_id = ? AND is_free_booking = ? AND status <> ?",
			patientID, doctorID, true, string(domain.StatusCancelled),
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) ListAppointmentsForDoctor(
	ctx context.Context,
	doctorID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ? AND date >= ? AND date <= ?", doctorID, from, to).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) ListAppointmentsForPatient(
	ctx context.Context,
	patientID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ? AND date >= ? AND date <= ?", patientID, from, to).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
