package interfaces

import (
	"context"
	"milling_aggregator/internal/domain/entities"
)

// IPaymentRepository abstracts persistence for Payment.
//
// Record appends the payment and flips its order from pending_payment to paid
// in one atomic step; a lost guard yields ErrConditionFailed.

type IPaymentRepository interface {
	Record(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error)
}
