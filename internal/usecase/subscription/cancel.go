package subscription

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/clinicore/clinic-scheduler/internal/audit"
	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	domain "github.com/clinicore/clinic-scheduler/internal/domain/subscription"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/models"
	"github.com/clinicore/clinic-scheduler/internal/notify"
)

// CancelSubscription refunds and closes a just-purchased subscription. The
// refund must go through before the status flips; a failed refund leaves
// the subscription active.
type CancelSubscription struct {
	subs       domain.Repository
	gateway    domain.PaymentGateway
	dispatcher *notify.Dispatcher
	audit      *audit.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewCancelSubscription(
	subs domain.Repository,
	gateway domain.PaymentGateway,
	dispatcher *notify.Dispatcher,
	auditDispatcher *audit.Dispatcher,
	logger *zap.Logger,
) *CancelSubscription {
	return &CancelSubscription{
		subs:       subs,
		gateway:    gateway,
		dispatcher: dispatcher,
		audit:      auditDispatcher,
		logger:     logger,
		now:        dateutil.NowUTC,
	}
}

func (uc *CancelSubscription) Execute(
	ctx context.Context,
	subscriptionID uint,
	patientID uint,
	reason string,
) error {

	sub, err := uc.subs.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub == nil {
		return httperr.ErrNotFound("subscription_not_found", "Subscription not found.")
	}

	if sub.PatientID != patientID {
		return httperr.ErrValidation("not_allowed", "Subscription belongs to another patient.")
	}

	now := uc.now()
	if err := domain.CanCancel(sub, now); err != nil {
		return err
	}

	refund, err := uc.gateway.CreateRefund(ctx, sub.PaymentID)
	if err != nil {
		uc.logger.Error("subscription refund failed",
			zap.Uint("subscription_id", sub.ID),
			zap.Error(err),
		)
		return httperr.ErrInternal("refund_failed", "The refund could not be processed.")
	}

	sub.Status = string(domain.StatusCancelled)
	sub.CancelledAt = &now
	if err := uc.subs.UpdateSubscription(ctx, sub); err != nil {
		return err
	}

	text := "Your subscription was cancelled and the payment refunded."
	if refund.CardLast4 != "" {
		text = text + " Refund issued to card ending " + refund.CardLast4 + "."
	}
	uc.dispatcher.Dispatch(notify.Message{
		RecipientType: models.RecipientPatient,
		RecipientID:   patientID,
		Type:          "subscription_cancelled",
		Text:          text,
	})

	uc.audit.Dispatch(audit.Event{
		ActorType: models.RecipientPatient,
		ActorID:   &patientID,
		Action:    "subscription_cancelled",
		Entity:    "subscription",
		EntityID:  &sub.ID,
		Metadata: map[string]any{
			"reason":    reason,
			"refund_id": refund.ID,
		},
	})

	return nil
}
