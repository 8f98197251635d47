package memory

import (
	"context"
	"fmt"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"
)

type PaymentRepository struct {
	store *Store
}

var _ interfaces.IPaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository(store *Store) *PaymentRepository {
	return &PaymentRepository{store: store}
}

// Record appends p and moves its order from pending_payment to paid under the
// order's lock.
func (r *PaymentRepository) Record(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if p.ID == "" {
		return entities.Payment{}, fmt.Errorf("payment repository: id is required")
	}
	if err := ctx.Err(); err != nil {
		return entities.Payment{}, err
	}

	s := r.store
	unlock := s.locks.Lock(orderKey(p.OrderID))
	defer unlock()

	s.mu.RLock()
	order, ok := s.orders[p.OrderID]
	_, exists := s.payments[p.ID]
	s.mu.RUnlock()
	if !ok || order.Status != entities.OrderStatusPendingPayment || exists {
		return entities.Payment{}, interfaces.ErrConditionFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	order.Status = entities.OrderStatusPaid
	order.UpdatedAt = p.CreatedAt
	s.orders[order.ID] = order
	s.payments[p.ID] = p
	s.paymentsByOrder[p.OrderID] = append(s.paymentsByOrder[p.OrderID], p.ID)
	return p, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	_ = ctx

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.payments[id], nil
}

func (r *PaymentRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error) {
	_ = ctx

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.paymentsByOrder[orderID]
	out := make([]entities.Payment, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.payments[id])
	}
	return out, nil
}
