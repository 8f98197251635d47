package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IPaymentUseCase is the payment recorder.
//
// Pay is a ledger entry, not a gateway call: it appends a recorded payment for
// the accepted quote's price and flips the order to paid, atomically. A failure
// before commit leaves the order untouched, so the whole call is safe to retry.

type IPaymentUseCase interface {
	Pay(ctx context.Context, orderID string, caller entities.Identity) (entities.Payment, error)
	ListPayments(ctx context.Context, caller entities.Identity) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo      interfaces.IPaymentRepository
	orderRepo interfaces.IOrderRepository
	quoteRepo interfaces.IQuoteRepository
	rfqRepo   interfaces.IRFQRepository
	metrics   interfaces.ILifecycleMetrics
	logger    *zap.Logger
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, orderRepo interfaces.IOrderRepository, quoteRepo interfaces.IQuoteRepository, rfqRepo interfaces.IRFQRepository, metrics interfaces.ILifecycleMetrics, logger *zap.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		repo:      repo,
		orderRepo: orderRepo,
		quoteRepo: quoteRepo,
		rfqRepo:   rfqRepo,
		metrics:   metricsOrNop(metrics),
		logger:    loggerOrNop(logger),
	}
}

func (u *PaymentUseCase) Pay(ctx context.Context, orderID string, caller entities.Identity) (entities.Payment, error) {
	if err := requireIdentity(caller); err != nil {
		return entities.Payment{}, err
	}
	orderID, err := requireID("order_id", orderID)
	if err != nil {
		return entities.Payment{}, err
	}

	o, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return entities.Payment{}, err
	}
	if o.ID == "" {
		return entities.Payment{}, entities.NewNotFoundError("order", orderID)
	}
	r, err := u.rfqRepo.GetByID(ctx, o.RFQID)
	if err != nil {
		return entities.Payment{}, err
	}
	if r.ID == "" {
		return entities.Payment{}, fmt.Errorf("order %s references missing rfq %s", o.ID, o.RFQID)
	}
	if !entities.CanView(r, caller) {
		return entities.Payment{}, entities.NewNotFoundError("order", orderID)
	}
	if o.Status != entities.OrderStatusPendingPayment {
		u.metrics.Conflict("pay")
		return entities.Payment{}, entities.NewConflictError("order", orderID, "order is "+string(o.Status))
	}

	q, err := u.quoteRepo.GetByID(ctx, o.QuoteID)
	if err != nil {
		return entities.Payment{}, err
	}
	if q.ID == "" {
		return entities.Payment{}, fmt.Errorf("order %s references missing quote %s", o.ID, o.QuoteID)
	}

	currency := q.Currency
	if currency == "" {
		currency = entities.DefaultCurrency
	}
	p := entities.Payment{
		ID:        uuid.NewString(),
		OrderID:   o.ID,
		Amount:    q.Price,
		Currency:  currency,
		Status:    entities.PaymentStatusRecorded,
		CreatedAt: time.Now().UTC(),
	}
	created, err := u.repo.Record(ctx, p)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			u.metrics.Conflict("pay")
			return entities.Payment{}, entities.NewConflictError("order", orderID, "order is no longer pending payment")
		}
		return entities.Payment{}, err
	}

	u.metrics.PaymentRecorded()
	requestLogger(ctx, u.logger).Info("payment recorded",
		zap.String("payment_id", created.ID),
		zap.String("order_id", o.ID),
		zap.String("amount", created.Amount.StringFixed(2)),
		zap.String("currency", created.Currency),
	)
	return created, nil
}

// ListPayments returns the payments of orders on the caller's RFQs, newest first.
func (u *PaymentUseCase) ListPayments(ctx context.Context, caller entities.Identity) ([]entities.Payment, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}

	owned, err := u.rfqRepo.ListByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	out := []entities.Payment{}
	for _, r := range owned {
		if !entities.CanView(r, caller) {
			continue
		}
		orders, err := u.orderRepo.ListByRFQID(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			payments, err := u.repo.ListByOrderID(ctx, o.ID)
			if err != nil {
				return nil, err
			}
			out = append(out, payments...)
		}
	}
	sortPaymentsNewestFirst(out)
	return out, nil
}
