package subscription

import (
	"context"
	"time"

	"github.com/clinicore/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Plans --------
	FindPlanByID(
		ctx context.Context,
		id uint,
	) (*models.Plan, error)

	ListPlansByDoctor(
		ctx context.Context,
		doctorID uint,
	) ([]models.Plan, error)

	CreatePlan(
		ctx context.Context,
		plan *models.Plan,
	) error

	// -------- Subscriptions --------
	CreateSubscription(
		ctx context.Context,
		sub *models.PatientSubscription,
	) error

	FindSubscriptionByID(
		ctx context.Context,
		id uint,
	) (*models.PatientSubscription, error)

	// FindActiveByPatientAndDoctor resolves the patient's active,
	// unexpired subscription to any of the doctor's plans.
	FindActiveByPatientAndDoctor(
		ctx context.Context,
		patientID uint,
		doctorID uint,
		now time.Time,
	) (*models.PatientSubscription, error)

	// IncrementAppointmentCount moves one appointment from left to used
	// in a single atomic update. DecrementAppointmentCount is its inverse.
	IncrementAppointmentCount(
		ctx context.Context,
		subscriptionID uint,
	) error

	DecrementAppointmentCount(
		ctx context.Context,
		subscriptionID uint,
	) error

	UpdateSubscription(
		ctx context.Context,
		sub *models.PatientSubscription,
	) error

	// ExpireDue flips active subscriptions whose end date has passed to
	// expired, returning how many rows changed.
	ExpireDue(
		ctx context.Context,
		now time.Time,
	) (int64, error)
}
