package booking

import (
	"context"
	"time"

	"github.com/clinicore/clinic-scheduler/internal/models"
)

// mockRepo implements the booking repository with overridable behaviors.
// Unset methods return the zero outcome.
type mockRepo struct {
	getDoctorByID               func(ctx context.Context, id uint) (*models.Doctor, error)
	getPatientByID              func(ctx context.Context, id uint) (*models.Patient, error)
	findAvailability            func(ctx context.Context, doctorID uint, date time.Time) (*models.Availability, error)
	findAvailabilityByID        func(ctx context.Context, id uint) (*models.Availability, error)
	listAvailability            func(ctx context.Context, doctorID uint, from, to time.Time) ([]models.Availability, error)
	saveAvailability            func(ctx context.Context, av *models.Availability) error
	deleteAvailability          func(ctx context.Context, id uint) error
	setSlotBooked               func(ctx context.Context, availabilityID uint, startTime, endTime string, booked bool) error
	createAppointment           func(ctx context.Context, ap *models.Appointment) error
	findAppointmentByID         func(ctx context.Context, id uint) (*models.Appointment, error)
	findActiveAppointmentBySlot func(ctx context.Context, doctorID uint, date time.Time, startTime, endTime string) (*models.Appointment, error)
	countFreeAppointments       func(ctx context.Context, patientID, doctorID uint) (int64, error)
	updateAppointment           func(ctx context.Context, ap *models.Appointment) error
	listAppointmentsForDoctor   func(ctx context.Context, doctorID uint, from, to time.Time) ([]models.Appointment, error)
	listAppointmentsForPatient  func(ctx context.Context, patientID uint, from, to time.Time) ([]models.Appointment, error)
}

func (m *mockRepo) GetDoctorByID(ctx context.Context, id uint) (*models.Doctor, error) {
	if m.getDoctorByID != nil {
		return m.getDoctorByID(ctx, id)
	}
	return &models.Doctor{ID: id, Name: "Dr. Default", Email: "doctor@clinic.test"}, nil
}

func (m *mockRepo) GetPatientByID(ctx context.Context, id uint) (*models.Patient, error) {
	if m.getPatientByID != nil {
		return m.getPatientByID(ctx, id)
	}
	return &models.Patient{ID: id, Name: "Pat Default", Email: "patient@clinic.test"}, nil
}

func (m *mockRepo) FindAvailability(ctx context.Context, doctorID uint, date time.Time) (*models.Availability, error) {
	if m.findAvailability != nil {
		return m.findAvailability(ctx, doctorID, date)
	}
	return nil, nil
}

func (m *mockRepo) FindAvailabilityByID(ctx context.Context, id uint) (*models.Availability, error) {
	if m.findAvailabilityByID != nil {
		return m.findAvailabilityByID(ctx, id)
	}
	return nil, nil
}

func (m *mockRepo) ListAvailability(ctx context.Context, doctorID uint, from, to time.Time) ([]models.Availability, error) {
	if m.listAvailability != nil {
		return m.listAvailability(ctx, doctorID, from, to)
	}
	return nil, nil
}

func (m *mockRepo) SaveAvailability(ctx context.Context, av *models.Availability) error {
	if m.saveAvailability != nil {
		return m.saveAvailability(ctx, av)
	}
	return nil
}

func (m *mockRepo) DeleteAvailability(ctx context.Context, id uint) error {
	if m.deleteAvailability != nil {
		return m.deleteAvailability(ctx, id)
	}
	return nil
}

func (m *mockRepo) SetSlotBooked(ctx context.Context, availabilityID uint, startTime, endTime string, booked bool) error {
	if m.setSlotBooked != nil {
		return m.setSlotBooked(ctx, availabilityID, startTime, endTime, booked)
	}
	return nil
}

func (m *mockRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if m.createAppointment != nil {
		return m.createAppointment(ctx, ap)
	}
	ap.ID = 1
	return nil
}

func (m *mockRepo) FindAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	if m.findAppointmentByID != nil {
		return m.findAppointmentByID(ctx, id)
	}
	return nil, nil
}

func (m *mockRepo) FindActiveAppointmentBySlot(ctx context.Context, doctorID uint, date time.Time, startTime, endTime string) (*models.Appointment, error) {
	if m.findActiveAppointmentBySlot != nil {
		return m.findActiveAppointmentBySlot(ctx, doctorID, date, startTime, endTime)
	}
	return nil, nil
}

func (m *mockRepo) CountFreeAppointments(ctx context.Context, patientID, doctorID uint) (int64, error) {
	if m.countFreeAppointments != nil {
		return m.countFreeAppointments(ctx, patientID, doctorID)
	}
	return 0, nil
}

func (m *mockRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if m.updateAppointment != nil {
		return m.updateAppointment(ctx, ap)
	}
	return nil
}

func (m *mockRepo) ListAppointmentsForDoctor(ctx context.Context, doctorID uint, from, to time.Time) ([]models.Appointment, error) {
	if m.listAppointmentsForDoctor != nil {
		return m.listAppointmentsForDoctor(ctx, doctorID, from, to)
	}
	return nil, nil
}

func (m *mockRepo) ListAppointmentsForPatient(ctx context.Context, patientID uint, from, to time.Time) ([]models.Appointment, error) {
	if m.listAppointmentsForPatient != nil {
		return m.listAppointmentsForPatient(ctx, patientID, from, to)
	}
	return nil, nil
}

// mockSubs implements the subscription repository the same way.
type mockSubs struct {
	findPlanByID                 func(ctx context.Context, id uint) (*models.Plan, error)
	listPlansByDoctor            func(ctx context.Context, doctorID uint) ([]models.Plan, error)
	createPlan                   func(ctx context.Context, plan *models.Plan) error
	createSubscription           func(ctx context.Context, sub *models.PatientSubscription) error
	findSubscriptionByID         func(ctx context.Context, id uint) (*models.PatientSubscription, error)
	findActiveByPatientAndDoctor func(ctx context.Context, patientID, doctorID uint, now time.Time) (*models.PatientSubscription, error)
	incrementAppointmentCount    func(ctx context.Context, subscriptionID uint) error
	decrementAppointmentCount    func(ctx context.Context, subscriptionID uint) error
	updateSubscription           func(ctx context.Context, sub *models.PatientSubscription) error
	expireDue                    func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockSubs) FindPlanByID(ctx context.Context, id uint) (*models.Plan, error) {
	if m.findPlanByID != nil {
		return m.findPlanByID(ctx, id)
	}
	return nil, nil
}

func (m *mockSubs) ListPlansByDoctor(ctx context.Context, doctorID uint) ([]models.Plan, error) {
	if m.listPlansByDoctor != nil {
		return m.listPlansByDoctor(ctx, doctorID)
	}
	return nil, nil
}

func (m *mockSubs) CreatePlan(ctx context.Context, plan *models.Plan) error {
	if m.createPlan != nil {
		return m.createPlan(ctx, plan)
	}
	return nil
}

func (m *mockSubs) CreateSubscription(ctx context.Context, sub *models.PatientSubscription) error {
	if m.createSubscription != nil {
		return m.createSubscription(ctx, sub)
	}
	return nil
}

func (m *mockSubs) FindSubscriptionByID(ctx context.Context, id uint) (*models.PatientSubscription, error) {
	if m.findSubscriptionByID != nil {
		return m.findSubscriptionByID(ctx, id)
	}
	return nil, nil
}

func (m *mockSubs) FindActiveByPatientAndDoctor(ctx context.Context, patientID, doctorID uint, now time.Time) (*models.PatientSubscription, error) {
	if m.findActiveByPatientAndDoctor != nil {
		return m.findActiveByPatientAndDoctor(ctx, patientID, doctorID, now)
	}
	return nil, nil
}

func (m *mockSubs) IncrementAppointmentCount(ctx context.Context, subscriptionID uint) error {
	if m.incrementAppointmentCount != nil {
		return m.incrementAppointmentCount(ctx, subscriptionID)
	}
	return nil
}

func (m *mockSubs) DecrementAppointmentCount(ctx context.Context, subscriptionID uint) error {
	if m.decrementAppointmentCount != nil {
		return m.decrementAppointmentCount(ctx, subscriptionID)
	}
	return nil
}

func (m *mockSubs) UpdateSubscription(ctx context.Context, sub *models.PatientSubscription) error {
	if m.updateSubscription != nil {
		return m.updateSubscription(ctx, sub)
	}
	return nil
}

func (m *mockSubs) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	if m.expireDue != nil {
		return m.expireDue(ctx, now)
	}
	return 0, nil
}
