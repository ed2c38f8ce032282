package payment

import (
	"context"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	mprefund "github.com/mercadopago/sdk-go/pkg/refund"

	domain "github.com/clinicore/clinic-scheduler/internal/domain/subscription"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
)

const statusApproved = "approved"

// MercadoPago adapts the Mercado Pago SDK to the domain PaymentGateway
// contract: authorize on CreateIntent, capture on ConfirmIntent.
type MercadoPago struct {
	payments mppayment.Client
	refunds  mprefund.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPago{
		payments: mppayment.NewClient(cfg),
		refunds:  mprefund.NewClient(cfg),
	}, nil
}

func (g *MercadoPago) CreateIntent(
	ctx context.Context,
	amountMinorUnits int64,
	description string,
	payerEmail string,
) (string, error) {

	res, err := g.payments.Create(ctx, mppayment.Request{
		TransactionAmount: float64(amountMinorUnits) / 100,
		Description:       description,
		Capture:           false,
		Payer: &mppayment.PayerRequest{
			Email: payerEmail,
		},
	})
	if err != nil {
		return "", err
	}

	return strconv.Itoa(res.ID), nil
}

func (g *MercadoPago) ConfirmIntent(
	ctx context.Context,
	intentID string,
) error {

	id, err := strconv.Atoi(intentID)
	if err != nil {
		return httperr.ErrValidation("invalid_payment_intent", "Unknown payment intent.")
	}

	res, err := g.payments.Capture(ctx, id)
	if err != nil {
		return err
	}

	if res.Status != statusApproved {
		return httperr.ErrValidation("payment_declined", "Payment was not approved.")
	}
	return nil
}

func (g *MercadoPago) CreateRefund(
	ctx context.Context,
	intentID string,
) (*domain.Refund, error) {

	id, err := strconv.Atoi(intentID)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_payment_intent", "Unknown payment intent.")
	}

	res, err := g.refunds.Create(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &domain.Refund{
		ID:               strconv.Itoa(res.ID),
		AmountMinorUnits: int64(res.Amount*100 + 0.5),
	}

	if pay, err := g.payments.Get(ctx, id); err == nil {
		out.CardLast4 = pay.Card.LastFourDigits
	}

	return out, nil
}

// Compile-time check
var _ domain.PaymentGateway = (*MercadoPago)(nil)
