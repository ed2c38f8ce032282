package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/clinicore/clinic-scheduler/internal/domain/subscription"
	"github.com/clinicore/clinic-scheduler/internal/models"
)

type SubscriptionGormRepository struct {
	db *gorm.DB
}

func NewSubscriptionGormRepository(db *gorm.DB) *SubscriptionGormRepository {
	return &SubscriptionGormRepository{db: db}
}

// --------------------------------------------------
// Plans
// --------------------------------------------------

func (r *SubscriptionGormRepository) FindPlanByID(
	ctx context.Context,
	id uint,
) (*models.Plan, error) {

	var plan models.Plan
	err := r.db.WithContext(ctx).First(&plan, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionGormRepository) ListPlansByDoctor(
	ctx context.Context,
	doctorID uint,
) ([]models.Plan, error) {

	var plans []models.Plan
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND active = ?", doctorID, true).
		Order("price_cents ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *SubscriptionGormRepository) CreatePlan(
	ctx context.Context,
	plan *models.Plan,
) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// --------------------------------------------------
// Subscriptions
// --------------------------------------------------

func (r *SubscriptionGormRepository) CreateSubscription(
	ctx context.Context,
	sub *models.PatientSubscription,
) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubscriptionGormRepository) FindSubscriptionByID(
	ctx context.Context,
	id uint,
) (*models.PatientSubscription, error) {

	var sub models.PatientSubscription
	err := r.db.WithContext(ctx).Preload("Plan").First(&sub, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionGormRepository) FindActiveByPatientAndDoctor(
	ctx context.Context,
	patientID uint,
	doctorID uint,
	now time.Time,
) (*models.PatientSubscription, error) {

	var sub models.PatientSubscription
	err := r.db.WithContext(ctx).
		Joins("JOIN plans ON plans.id = patient_subscriptions.plan_id").
		Where(
			"patient_subscriptions.patient_id = ? AND plans.doctor_id = ? AND patient_subscriptions.status = ? AND patient_subscriptions.end_date >= ?",
			patientID, doctorID, string(domain.StatusActive), now,
		).
		Preload("Plan").
		First(&sub).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// IncrementAppointmentCount moves one appointment from left to used. Both
// columns change in the same UPDATE so the pair's sum is conserved even
// when calls race; the stored counters are never clamped.
func (r *SubscriptionGormRepository) IncrementAppointmentCount(
	ctx context.Context,
	subscriptionID uint,
) error {

	return r.db.WithContext(ctx).
		Model(&models.PatientSubscription{}).
		Where("id = ?", subscriptionID).
		Updates(map[string]any{
			"appointments_used": gorm.Expr("appointments_used + 1"),
			"appointments_left": gorm.Expr("appointments_left - 1"),
		}).Error
}

func (r *SubscriptionGormRepository) DecrementAppointmentCount(
	ctx context.Context,
	subscriptionID uint,
) error {

	return r.db.WithContext(ctx).
		Model(&models.PatientSubscription{}).
		Where("id = ?", subscriptionID).
		Updates(map[string]any{
			"appointments_used": gorm.Expr("appointments_used - 1"),
			"appointments_left": gorm.Expr("appointments_left + 1"),
		}).Error
}

func (r *SubscriptionGormRepository) UpdateSubscription(
	ctx context.Context,
	sub *models.PatientSubscription,
) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *SubscriptionGormRepository) ExpireDue(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.PatientSubscription{}).
		Where("status = ? AND end_date <= ?", string(domain.StatusActive), now).
		Update("status", string(domain.StatusExpired))

	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*SubscriptionGormRepository)(nil)
