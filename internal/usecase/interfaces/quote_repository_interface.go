package interfaces

import (
	"context"
	"milling_aggregator/internal/domain/entities"
)

// IQuoteRepository abstracts persistence for Quote.
//
// Create must refuse (ErrConditionFailed) a quote whose RFQ is missing or has
// already been awarded, checked atomically with the write, and must bump the
// RFQ's QuoteVersion in the same step.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByRFQID(ctx context.Context, rfqID string) ([]entities.Quote, error)
}
