package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/settlement"
)

// SettlementRepository defines the persistence contract for payment and tip
// records. Settlement rows are append-only; there is no update or delete.
type SettlementRepository interface {
	// AddPayment persists a payment record. Returns an error unwrapping to
	// settlement.ErrAlreadySettled if the order already has a payment
	// (enforced by a unique constraint on the order reference).
	AddPayment(ctx context.Context, payment settlement.Payment) error

	// AddTip persists a tip record against an existing payment.
	AddTip(ctx context.Context, tip settlement.Tip) error

	// GetPaymentByOrderID retrieves the payment recorded for an order.
	// Returns an error unwrapping to errs.ErrObjectNotFound if the order
	// has no payment.
	GetPaymentByOrderID(ctx context.Context, orderID kernel.UUID) (settlement.Payment, error)
}
