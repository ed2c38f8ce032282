package subscription

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clinicore/clinic-scheduler/internal/audit"
	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	bookingdomain "github.com/clinicore/clinic-scheduler/internal/domain/booking"
	domain "github.com/clinicore/clinic-scheduler/internal/domain/subscription"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/models"
	"github.com/clinicore/clinic-scheduler/internal/notify"
)

// ======================================================
// USE CASE
// ======================================================

// PurchaseSubscription charges the plan price through the payment gateway
// and, once the charge is approved, opens the subscription with the plan's
// full appointment quota.
type PurchaseSubscription struct {
	subs       domain.Repository
	directory  bookingdomain.Repository
	gateway    domain.PaymentGateway
	dispatcher *notify.Dispatcher
	audit      *audit.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewPurchaseSubscription(
	subs domain.Repository,
	directory bookingdomain.Repository,
	gateway domain.PaymentGateway,
	dispatcher *notify.Dispatcher,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *PurchaseSubscription {
	return &PurchaseSubscription{
		subs:       subs,
		directory:  directory,
		gateway:    gateway,
		dispatcher: dispatcher,
		audit:      auditDispatcher,
		logger:     logger,
		now:        dateutil.NowUTC,
	}
}

func (uc *PurchaseSubscription) Execute(
	ctx context.Context,
	patientID uint,
	planID uint,
) (*models.PatientSubscription, error) {

	patient, err := uc.directory.GetPatientByID(ctx, patientID)
	if err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("patient_not_found", "Patient not found.")
		}
		return nil, err
	}

	plan, err := uc.subs.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.Active {
		return nil, httperr.ErrNotFound("plan_not_found", "Plan not found.")
	}

	existing, err := uc.subs.FindActiveByPatientAndDoctor(ctx, patientID, plan.DoctorID, uc.now())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrValidation("already_subscribed", "There is already an active subscription with this doctor.")
	}

	intentID, err := uc.gateway.CreateIntent(
		ctx,
		plan.PriceCents,
		fmt.Sprintf("Subscription: %s", plan.Name),
		patient.Email,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.gateway.ConfirmIntent(ctx, intentID); err != nil {
		return nil, err
	}

	now := uc.now()
	sub := &models.PatientSubscription{
		PatientID:        patientID,
		PlanID:           plan.ID,
		StartDate:        now,
		EndDate:          now.AddDate(0, 0, plan.DurationDays),
		Status:           string(domain.StatusActive),
		PriceCents:       plan.PriceCents,
		AppointmentsLeft: plan.AppointmentCount,
		PaymentID:        intentID,
	}

	if err := uc.subs.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(notify.Message{
		RecipientType: models.RecipientPatient,
		RecipientID:   patientID,
		Type:          "subscription_purchased",
		Text:          fmt.Sprintf("Your subscription %q is active until %s.", plan.Name, sub.EndDate.Format(dateutil.DayLayout)),
		Email:         patient.Email,
		EmailSubject:  "Subscription confirmed",
	})

	uc.audit.Dispatch(audit.Event{
		ActorType: models.RecipientPatient,
		ActorID:   &patientID,
		Action:    "subscription_purchased",
		Entity:    "subscription",
		EntityID:  &sub.ID,
	})

	return sub, nil
}
