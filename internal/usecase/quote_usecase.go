package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IQuoteUseCase exposes the quote store operations.

type IQuoteUseCase interface {
	SubmitQuote(ctx context.Context, rfqID string, supplier entities.Identity, sub entities.QuoteSubmission) (entities.Quote, error)
	ListQuotes(ctx context.Context, filter entities.QuoteFilter, caller entities.Identity) ([]entities.Quote, error)
}

type QuoteUseCase struct {
	repo    interfaces.IQuoteRepository
	rfqRepo interfaces.IRFQRepository
	metrics interfaces.ILifecycleMetrics
	logger  *zap.Logger
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, rfqRepo interfaces.IRFQRepository, metrics interfaces.ILifecycleMetrics, logger *zap.Logger) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, rfqRepo: rfqRepo, metrics: metricsOrNop(metrics), logger: loggerOrNop(logger)}
}

// SubmitQuote records a supplier's response. New quotes always start open.
// An RFQ that has already been awarded accepts no further quotes.
func (u *QuoteUseCase) SubmitQuote(ctx context.Context, rfqID string, supplier entities.Identity, sub entities.QuoteSubmission) (entities.Quote, error) {
	if err := requireIdentity(supplier); err != nil {
		return entities.Quote{}, err
	}
	rfqID, err := requireID("rfq_id", rfqID)
	if err != nil {
		return entities.Quote{}, err
	}
	sub = sub.Normalize()
	if err := sub.Validate(); err != nil {
		return entities.Quote{}, err
	}

	r, err := u.rfqRepo.GetByID(ctx, rfqID)
	if err != nil {
		return entities.Quote{}, err
	}
	if r.ID == "" {
		return entities.Quote{}, entities.NewNotFoundError("rfq", rfqID)
	}
	if r.Awarded() {
		u.metrics.Conflict("submit_quote")
		return entities.Quote{}, entities.NewConflictError("rfq", rfqID, "rfq already awarded")
	}

	now := time.Now().UTC()
	q := entities.Quote{
		ID:           uuid.NewString(),
		RFQID:        rfqID,
		SupplierID:   supplier.UserID,
		SupplierName: sub.SupplierName,
		Price:        sub.Price,
		Currency:     entities.DefaultCurrency,
		LeadTimeDays: sub.LeadTimeDays,
		Notes:        sub.Notes,
		Status:       entities.QuoteStatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := u.repo.Create(ctx, q)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			u.metrics.Conflict("submit_quote")
			return entities.Quote{}, entities.NewConflictError("rfq", rfqID, "rfq already awarded")
		}
		return entities.Quote{}, err
	}
	u.metrics.QuoteSubmitted()
	requestLogger(ctx, u.logger).Info("quote submitted",
		zap.String("quote_id", created.ID),
		zap.String("rfq_id", rfqID),
		zap.String("supplier_id", created.SupplierID),
		zap.String("price", created.Price.StringFixed(2)),
		zap.Int("lead_time_days", created.LeadTimeDays),
	)
	return created, nil
}

// ListQuotes returns the quotes on the caller's RFQs, cheapest first.
// Filtering by an RFQ the caller cannot see yields an empty list.
func (u *QuoteUseCase) ListQuotes(ctx context.Context, filter entities.QuoteFilter, caller entities.Identity) ([]entities.Quote, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}

	filter.RFQID = strings.TrimSpace(filter.RFQID)
	var rfqIDs []string
	if filter.RFQID != "" {
		r, err := u.rfqRepo.GetByID(ctx, filter.RFQID)
		if err != nil {
			return nil, err
		}
		if r.ID == "" || !entities.CanView(r, caller) {
			return []entities.Quote{}, nil
		}
		rfqIDs = []string{r.ID}
	} else {
		owned, err := u.rfqRepo.ListByUserID(ctx, caller.UserID)
		if err != nil {
			return nil, err
		}
		for _, r := range owned {
			if entities.CanView(r, caller) {
				rfqIDs = append(rfqIDs, r.ID)
			}
		}
	}

	out := []entities.Quote{}
	for _, id := range rfqIDs {
		quotes, err := u.repo.ListByRFQID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, quotes...)
	}
	sortQuotesByPrice(out)
	return out, nil
}
