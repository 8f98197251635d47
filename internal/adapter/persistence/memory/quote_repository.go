package memory

import (
	"context"
	"fmt"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"
)

type QuoteRepository struct {
	store *Store
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository(store *Store) *QuoteRepository {
	return &QuoteRepository{store: store}
}

// Create inserts q under its RFQ's lock, so it cannot interleave with an
// acceptance on the same RFQ.
func (r *QuoteRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	if q.ID == "" {
		return entities.Quote{}, fmt.Errorf("quote repository: id is required")
	}
	if err := ctx.Err(); err != nil {
		return entities.Quote{}, err
	}

	s := r.store
	unlock := s.locks.Lock(rfqKey(q.RFQID))
	defer unlock()

	s.mu.RLock()
	rfq, ok := s.rfqs[q.RFQID]
	_, exists := s.quotes[q.ID]
	s.mu.RUnlock()
	if !ok || rfq.Awarded() || exists {
		return entities.Quote{}, interfaces.ErrConditionFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rfq.QuoteVersion++
	s.rfqs[rfq.ID] = rfq
	s.quotes[q.ID] = q
	s.quotesByRFQ[q.RFQID] = append(s.quotesByRFQ[q.RFQID], q.ID)
	return q, nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	_ = ctx

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.quotes[id], nil
}

func (r *QuoteRepository) ListByRFQID(ctx context.Context, rfqID string) ([]entities.Quote, error) {
	_ = ctx

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.quotesByRFQ[rfqID]
	out := make([]entities.Quote, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.quotes[id])
	}
	return out, nil
}
