package memory

import (
	"context"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"
)

type OrderRepository struct {
	store *Store
}

var _ interfaces.IOrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// AcceptQuote applies tx while holding the RFQ's lock. Only holders of that
// lock mutate the RFQ and its quotes, so guards read under it stay valid until
// the writes land. A failed guard leaves the store untouched.
func (r *OrderRepository) AcceptQuote(ctx context.Context, tx interfaces.AcceptQuoteTx) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	unlock := s.locks.Lock(rfqKey(tx.RFQID))
	defer unlock()

	s.mu.RLock()
	rfq, ok := s.checkAcceptGuards(tx)
	s.mu.RUnlock()
	if !ok {
		return interfaces.ErrConditionFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rfq.AcceptedQuoteID = tx.QuoteID
	s.rfqs[rfq.ID] = rfq

	accepted := s.quotes[tx.QuoteID]
	accepted.Status = entities.QuoteStatusAccepted
	accepted.UpdatedAt = tx.At
	s.quotes[accepted.ID] = accepted

	for _, id := range tx.SupersededQuoteIDs {
		q := s.quotes[id]
		q.Status = entities.QuoteStatusSuperseded
		q.UpdatedAt = tx.At
		s.quotes[id] = q
	}

	s.orders[tx.Order.ID] = tx.Order
	s.ordersByRFQ[tx.RFQID] = append(s.ordersByRFQ[tx.RFQID], tx.Order.ID)
	return nil
}

// checkAcceptGuards must be called with s.mu held for reading.
func (s *Store) checkAcceptGuards(tx interfaces.AcceptQuoteTx) (entities.RFQ, bool) {
	rfq, ok := s.rfqs[tx.RFQID]
	if !ok || rfq.Awarded() || rfq.QuoteVersion != tx.RFQVersion {
		return entities.RFQ{}, false
	}
	for _, id := range append([]string{tx.QuoteID}, tx.SupersededQuoteIDs...) {
		q, ok := s.quotes[id]
		if !ok || q.RFQID != tx.RFQID || !q.IsOpen() {
			return entities.RFQ{}, false
		}
	}
	if _, exists := s.orders[tx.Order.ID]; exists {
		return entities.RFQ{}, false
	}
	return rfq, true
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	_ = ctx

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.orders[id], nil
}

func (r *OrderRepository) ListByRFQID(ctx context.Context, rfqID string) ([]entities.Order, error) {
	_ = ctx

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.ordersByRFQ[rfqID]
	out := make([]entities.Order, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.orders[id])
	}
	return out, nil
}
