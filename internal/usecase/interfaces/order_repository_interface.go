package interfaces

import (
	"context"
	"time"

	"milling_aggregator/internal/domain/entities"
)

// AcceptQuoteTx is the write set of a quote acceptance. It is applied all or nothing.
//
// Guards evaluated at commit time:
//   - the RFQ carries no award marker yet and its QuoteVersion equals RFQVersion
//   - the accepted quote and every superseded quote are still open
//   - no order with Order.ID exists
type AcceptQuoteTx struct {
	RFQID              string
	RFQVersion         int64
	QuoteID            string
	SupersededQuoteIDs []string
	Order              entities.Order
	At                 time.Time
}

// IOrderRepository abstracts persistence for Order and owns the accept-quote transaction.

type IOrderRepository interface {
	AcceptQuote(ctx context.Context, tx AcceptQuoteTx) error
	GetByID(ctx context.Context, id string) (entities.Order, error)
	ListByRFQID(ctx context.Context, rfqID string) ([]entities.Order, error)
}
