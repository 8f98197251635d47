package memory

import (
	"context"
	"fmt"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"
)

type RFQRepository struct {
	store *Store
}

var _ interfaces.IRFQRepository = (*RFQRepository)(nil)

func NewRFQRepository(store *Store) *RFQRepository {
	return &RFQRepository{store: store}
}

func (r *RFQRepository) Create(ctx context.Context, rfq entities.RFQ) (entities.RFQ, error) {
	_ = ctx
	if rfq.ID == "" {
		return entities.RFQ{}, fmt.Errorf("rfq repository: id is required")
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rfqs[rfq.ID]; exists {
		return entities.RFQ{}, interfaces.ErrConditionFailed
	}
	rfq.AcceptedQuoteID = ""
	rfq.QuoteVersion = 0
	s.rfqs[rfq.ID] = rfq
	s.rfqsByUser[rfq.UserID] = append(s.rfqsByUser[rfq.UserID], rfq.ID)
	return rfq, nil
}

func (r *RFQRepository) GetByID(ctx context.Context, id string) (entities.RFQ, error) {
	_ = ctx

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.rfqs[id], nil
}

func (r *RFQRepository) ListByUserID(ctx context.Context, userID string) ([]entities.RFQ, error) {
	_ = ctx

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.rfqsByUser[userID]
	out := make([]entities.RFQ, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.rfqs[id])
	}
	return out, nil
}
