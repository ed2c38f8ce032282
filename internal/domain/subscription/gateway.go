package subscription

import "context"

// Refund is the outcome of a gateway refund.
type Refund struct {
	ID               string
	AmountMinorUnits int64
	CardLast4        string
}

// PaymentGateway is the narrow payment collaborator: authorize, capture,
// refund. Provider details stay behind this interface.
type PaymentGateway interface {
	CreateIntent(
		ctx context.Context,
		amountMinorUnits int64,
		description string,
		payerEmail string,
	) (string, error)

	ConfirmIntent(
		ctx context.Context,
		intentID string,
	) error

	CreateRefund(
		ctx context.Context,
		intentID string,
	) (*Refund, error)
}
