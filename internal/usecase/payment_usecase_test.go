package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"
	mock_interfaces "milling_aggregator/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type paymentMocks struct {
	payments *mock_interfaces.MockIPaymentRepository
	orders   *mock_interfaces.MockIOrderRepository
	quotes   *mock_interfaces.MockIQuoteRepository
	rfqs     *mock_interfaces.MockIRFQRepository
}

func newPaymentUseCaseWithMocks(t *testing.T) (*PaymentUseCase, paymentMocks) {
	ctrl := gomock.NewController(t)
	m := paymentMocks{
		payments: mock_interfaces.NewMockIPaymentRepository(ctrl),
		orders:   mock_interfaces.NewMockIOrderRepository(ctrl),
		quotes:   mock_interfaces.NewMockIQuoteRepository(ctrl),
		rfqs:     mock_interfaces.NewMockIRFQRepository(ctrl),
	}
	return NewPaymentUseCase(m.payments, m.orders, m.quotes, m.rfqs, nil, nil), m
}

func TestPaymentUseCase_Pay(t *testing.T) {
	ownRFQ := entities.RFQ{ID: "rfq-1", UserID: buyer.UserID, AcceptedQuoteID: "q-1"}
	pending := entities.Order{ID: "o-1", RFQID: "rfq-1", QuoteID: "q-1", Status: entities.OrderStatusPendingPayment}
	accepted := entities.Quote{ID: "q-1", RFQID: "rfq-1", Price: decimal.RequireFromString("99.50"), Currency: "EUR", Status: entities.QuoteStatusAccepted}

	t.Run("unknown order", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-404").Return(entities.Order{}, nil)

		_, err := uc.Pay(context.Background(), "o-404", buyer)
		if !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("foreign order", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pending, nil)
		m.rfqs.EXPECT().GetByID(gomock.Any(), "rfq-1").Return(ownRFQ, nil)

		_, err := uc.Pay(context.Background(), "o-1", stranger)
		if !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("already paid", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		paid := pending
		paid.Status = entities.OrderStatusPaid
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(paid, nil)
		m.rfqs.EXPECT().GetByID(gomock.Any(), "rfq-1").Return(ownRFQ, nil)

		_, err := uc.Pay(context.Background(), "o-1", buyer)
		if !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("missing quote is an internal error", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pending, nil)
		m.rfqs.EXPECT().GetByID(gomock.Any(), "rfq-1").Return(ownRFQ, nil)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		_, err := uc.Pay(context.Background(), "o-1", buyer)
		if err == nil || errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected untyped integrity error, got %v", err)
		}
	})

	t.Run("concurrent pay loses the guard", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pending, nil)
		m.rfqs.EXPECT().GetByID(gomock.Any(), "rfq-1").Return(ownRFQ, nil)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(accepted, nil)
		m.payments.EXPECT().Record(gomock.Any(), gomock.Any()).Return(entities.Payment{}, interfaces.ErrConditionFailed)

		_, err := uc.Pay(context.Background(), "o-1", buyer)
		if !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("records the quote price", func(t *testing.T) {
		uc, m := newPaymentUseCaseWithMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "o-1").Return(pending, nil)
		m.rfqs.EXPECT().GetByID(gomock.Any(), "rfq-1").Return(ownRFQ, nil)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(accepted, nil)
		m.payments.EXPECT().Record(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.ID == "" || p.OrderID != "o-1" || p.Status != entities.PaymentStatusRecorded {
					t.Fatalf("unexpected payment: %+v", p)
				}
				return p, nil
			},
		)

		p, err := uc.Pay(context.Background(), " o-1 ", buyer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.Amount.Equal(decimal.RequireFromString("99.5")) || p.Currency != "EUR" {
			t.Fatalf("unexpected amount %s %s", p.Amount, p.Currency)
		}
	})
}

func TestPaymentUseCase_ListPayments(t *testing.T) {
	uc, m := newPaymentUseCaseWithMocks(t)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	m.rfqs.EXPECT().ListByUserID(gomock.Any(), buyer.UserID).Return([]entities.RFQ{{ID: "rfq-1", UserID: buyer.UserID}}, nil)
	m.orders.EXPECT().ListByRFQID(gomock.Any(), "rfq-1").Return([]entities.Order{{ID: "o-1"}, {ID: "o-2"}}, nil)
	m.payments.EXPECT().ListByOrderID(gomock.Any(), "o-1").Return([]entities.Payment{{ID: "p-1", CreatedAt: base}}, nil)
	m.payments.EXPECT().ListByOrderID(gomock.Any(), "o-2").Return([]entities.Payment{{ID: "p-2", CreatedAt: base.Add(time.Hour)}}, nil)

	res, err := uc.ListPayments(context.Background(), buyer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res) != 2 || res[0].ID != "p-2" {
		t.Fatalf("expected newest first, got %+v", res)
	}
}
