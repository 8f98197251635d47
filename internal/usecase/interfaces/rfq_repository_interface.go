package interfaces

import (
	"context"
	"milling_aggregator/internal/domain/entities"
)

// IRFQRepository abstracts persistence for RFQ.
//
// GetByID returns a zero RFQ (empty ID) when nothing matches.

type IRFQRepository interface {
	Create(ctx context.Context, r entities.RFQ) (entities.RFQ, error)
	GetByID(ctx context.Context, id string) (entities.RFQ, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.RFQ, error)
}
