package usecase

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/infrastructure/logger"
	"milling_aggregator/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type nopMetrics struct{}

func (nopMetrics) RFQSubmitted()     {}
func (nopMetrics) QuoteSubmitted()   {}
func (nopMetrics) QuoteAccepted(int) {}
func (nopMetrics) PaymentRecorded()  {}
func (nopMetrics) Conflict(string)   {}

var _ interfaces.ILifecycleMetrics = nopMetrics{}

func metricsOrNop(m interfaces.ILifecycleMetrics) interfaces.ILifecycleMetrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// requestLogger returns the request-scoped logger attached by the HTTP
// middleware, falling back to base outside a request.
func requestLogger(ctx context.Context, base *zap.Logger) *zap.Logger {
	if logger.GetRequestID(ctx) == "" {
		return base
	}
	return logger.FromContext(ctx)
}

func requireIdentity(id entities.Identity) error {
	if id.IsZero() {
		return entities.NewAuthError("missing caller identity")
	}
	return nil
}

func requireID(field, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", entities.NewValidationError(field, "must not be empty")
	}
	return id, nil
}

// sortRFQsNewestFirst orders by creation time descending, ID as tie-breaker so
// the sequence is stable for a given store.
func sortRFQsNewestFirst(items []entities.RFQ) {
	slices.SortStableFunc(items, func(a, b entities.RFQ) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func sortOrdersNewestFirst(items []entities.Order) {
	slices.SortStableFunc(items, func(a, b entities.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func sortPaymentsNewestFirst(items []entities.Payment) {
	slices.SortStableFunc(items, func(a, b entities.Payment) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// sortQuotesByPrice orders cheapest first, then oldest first.
func sortQuotesByPrice(items []entities.Quote) {
	slices.SortStableFunc(items, func(a, b entities.Quote) int {
		if c := a.Price.Cmp(b.Price); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
