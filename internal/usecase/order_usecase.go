package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IOrderUseCase is the order lifecycle manager.
//
// AcceptQuote is the only way an order comes into existence:
//   - the accepted quote moves open -> accepted
//   - every other open quote on the RFQ moves open -> rejected-by-supersede
//   - a pending_payment order referencing the RFQ and the quote is created
//
// The three effects commit together or not at all.

type IOrderUseCase interface {
	AcceptQuote(ctx context.Context, quoteID string, caller entities.Identity) (entities.Order, error)
	GetByID(ctx context.Context, id string, caller entities.Identity) (entities.Order, error)
	ListOrders(ctx context.Context, filter entities.OrderFilter, caller entities.Identity) ([]entities.Order, error)
}

type OrderUseCase struct {
	repo      interfaces.IOrderRepository
	quoteRepo interfaces.IQuoteRepository
	rfqRepo   interfaces.IRFQRepository
	metrics   interfaces.ILifecycleMetrics
	logger    *zap.Logger

	siblingRetryDelay time.Duration
}

// Quote listings come from a secondary index that may lag behind the RFQ's
// QuoteVersion. The listing is re-read this many times before giving up.
const siblingReadAttempts = 3

var errSiblingsUnsettled = errors.New("quote listing behind rfq quote version")

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository, quoteRepo interfaces.IQuoteRepository, rfqRepo interfaces.IRFQRepository, metrics interfaces.ILifecycleMetrics, logger *zap.Logger) *OrderUseCase {
	return &OrderUseCase{
		repo:              repo,
		quoteRepo:         quoteRepo,
		rfqRepo:           rfqRepo,
		metrics:           metricsOrNop(metrics),
		logger:            loggerOrNop(logger),
		siblingRetryDelay: 50 * time.Millisecond,
	}
}

func (u *OrderUseCase) AcceptQuote(ctx context.Context, quoteID string, caller entities.Identity) (entities.Order, error) {
	if err := requireIdentity(caller); err != nil {
		return entities.Order{}, err
	}
	quoteID, err := requireID("quote_id", quoteID)
	if err != nil {
		return entities.Order{}, err
	}
	log := requestLogger(ctx, u.logger)

	q, err := u.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Order{}, err
	}
	if q.ID == "" {
		return entities.Order{}, entities.NewNotFoundError("quote", quoteID)
	}

	r, err := u.rfqRepo.GetByID(ctx, q.RFQID)
	if err != nil {
		return entities.Order{}, err
	}
	if r.ID == "" {
		return entities.Order{}, fmt.Errorf("quote %s references missing rfq %s", q.ID, q.RFQID)
	}
	if !entities.CanView(r, caller) {
		return entities.Order{}, entities.NewNotFoundError("quote", quoteID)
	}
	if !q.IsOpen() {
		u.metrics.Conflict("accept_quote")
		return entities.Order{}, entities.NewConflictError("quote", quoteID, "quote is "+string(q.Status))
	}
	if r.Awarded() {
		u.metrics.Conflict("accept_quote")
		return entities.Order{}, entities.NewConflictError("rfq", r.ID, "rfq already awarded to quote "+r.AcceptedQuoteID)
	}

	siblings, err := u.listSiblings(ctx, r)
	if err != nil {
		if errors.Is(err, errSiblingsUnsettled) {
			u.metrics.Conflict("accept_quote")
			log.Warn("accept quote saw an incomplete quote listing",
				zap.String("quote_id", q.ID),
				zap.String("rfq_id", r.ID),
				zap.Int64("quote_version", r.QuoteVersion),
			)
			return entities.Order{}, entities.NewConflictError("rfq", r.ID, "quote listing not yet consistent, retry")
		}
		return entities.Order{}, err
	}
	superseded := make([]string, 0, len(siblings))
	for _, s := range siblings {
		if s.ID != q.ID && s.IsOpen() {
			superseded = append(superseded, s.ID)
		}
	}

	now := time.Now().UTC()
	order := entities.Order{
		ID:        uuid.NewString(),
		RFQID:     r.ID,
		QuoteID:   q.ID,
		Status:    entities.OrderStatusPendingPayment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = u.repo.AcceptQuote(ctx, interfaces.AcceptQuoteTx{
		RFQID:              r.ID,
		RFQVersion:         r.QuoteVersion,
		QuoteID:            q.ID,
		SupersededQuoteIDs: superseded,
		Order:              order,
		At:                 now,
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			u.metrics.Conflict("accept_quote")
			log.Warn("accept quote lost race",
				zap.String("quote_id", q.ID),
				zap.String("rfq_id", r.ID),
			)
			return entities.Order{}, entities.NewConflictError("quote", quoteID, "rfq quote set changed concurrently")
		}
		return entities.Order{}, err
	}

	u.metrics.QuoteAccepted(len(superseded))
	log.Info("quote accepted",
		zap.String("quote_id", q.ID),
		zap.String("rfq_id", r.ID),
		zap.String("order_id", order.ID),
		zap.Int("superseded", len(superseded)),
	)
	return order, nil
}

// listSiblings returns every quote of r once the listing accounts for all
// r.QuoteVersion submissions. Superseding from a partial listing would leave a
// quote open on an awarded RFQ.
func (u *OrderUseCase) listSiblings(ctx context.Context, r entities.RFQ) ([]entities.Quote, error) {
	for attempt := 1; ; attempt++ {
		siblings, err := u.quoteRepo.ListByRFQID(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		n := int64(len(siblings))
		if n == r.QuoteVersion {
			return siblings, nil
		}
		// More quotes than the version counts: r is already stale and the
		// version guard would reject the transaction anyway.
		if n > r.QuoteVersion || attempt == siblingReadAttempts {
			return nil, errSiblingsUnsettled
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * u.siblingRetryDelay):
		}
	}
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string, caller entities.Identity) (entities.Order, error) {
	if err := requireIdentity(caller); err != nil {
		return entities.Order{}, err
	}
	id, err := requireID("order_id", id)
	if err != nil {
		return entities.Order{}, err
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, entities.NewNotFoundError("order", id)
	}
	r, err := u.rfqRepo.GetByID(ctx, o.RFQID)
	if err != nil {
		return entities.Order{}, err
	}
	if r.ID == "" || !entities.CanView(r, caller) {
		return entities.Order{}, entities.NewNotFoundError("order", id)
	}
	return o, nil
}

// ListOrders returns the orders placed on the caller's RFQs, newest first.
func (u *OrderUseCase) ListOrders(ctx context.Context, filter entities.OrderFilter, caller entities.Identity) ([]entities.Order, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}
	filter.RFQID = strings.TrimSpace(filter.RFQID)
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, entities.NewValidationError("status", "unrecognized order status "+string(filter.Status))
	}

	owned, err := u.rfqRepo.ListByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	out := []entities.Order{}
	for _, r := range owned {
		if !entities.CanView(r, caller) {
			continue
		}
		if filter.RFQID != "" && r.ID != filter.RFQID {
			continue
		}
		orders, err := u.repo.ListByRFQID(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			if filter.Match(o) {
				out = append(out, o)
			}
		}
	}
	sortOrdersNewestFirst(out)
	return out, nil
}
