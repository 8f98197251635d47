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

func submission(price string) entities.QuoteSubmission {
	return entities.QuoteSubmission{SupplierName: "Acme Milling", Price: decimal.RequireFromString(price), LeadTimeDays: 14}
}

func TestQuoteUseCase_SubmitQuote(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name  string
			sub   entities.QuoteSubmission
			field string
		}{
			{name: "negative price", sub: entities.QuoteSubmission{SupplierName: "A", Price: decimal.RequireFromString("-0.01")}, field: "price"},
			{name: "negative lead time", sub: entities.QuoteSubmission{SupplierName: "A", LeadTimeDays: -1}, field: "lead_time_days"},
			{name: "blank supplier name", sub: entities.QuoteSubmission{SupplierName: "   ", Price: decimal.NewFromInt(1)}, field: "supplier_name"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				uc := NewQuoteUseCase(nil, nil, nil, nil)
				_, err := uc.SubmitQuote(context.Background(), "rfq-1", supplier, tc.sub)
				var verr *entities.ValidationError
				if !errors.As(err, &verr) || verr.Field != tc.field {
					t.Fatalf("expected %s validation error, got %v", tc.field, err)
				}
			})
		}
	})

	t.Run("rfq missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rfqs := mock_interfaces.NewMockIRFQRepository(ctrl)
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quotes, rfqs, nil, nil)

		rfqs.EXPECT().GetByID(gomock.Any(), "rfq-404").Return(entities.RFQ{}, nil)

		_, err := uc.SubmitQuote(context.Background(), "rfq-404", supplier, submission("10"))
		if !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rfq already awarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rfqs := mock_interfaces.NewMockIRFQRepository(ctrl)
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quotes, rfqs, nil, nil)

		rfqs.EXPECT().GetByID(gomock.Any(), "rfq-1").Return(entities.RFQ{ID: "rfq-1", AcceptedQuoteID: "q-0"}, nil)

		_, err := uc.SubmitQuote(context.Background(), "rfq-1", supplier, submission("10"))
		if !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("award raced the write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rfqs := mock_interfaces.NewMockIRFQRepository(ctrl)
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quotes, rfqs, nil, nil)

		rfqs.EXPECT().GetByID(gomock.Any(), "rfq-1").Return(entities.RFQ{ID: "rfq-1"}, nil)
		quotes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quote{}, interfaces.ErrConditionFailed)

		_, err := uc.SubmitQuote(context.Background(), "rfq-1", supplier, submission("10"))
		if !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("create success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rfqs := mock_interfaces.NewMockIRFQRepository(ctrl)
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quotes, rfqs, nil, nil)

		rfqs.EXPECT().GetByID(gomock.Any(), "rfq-1").Return(entities.RFQ{ID: "rfq-1", UserID: buyer.UserID}, nil)
		quotes.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.ID == "" || q.RFQID != "rfq-1" || q.SupplierID != supplier.UserID {
					t.Fatalf("unexpected quote: %+v", q)
				}
				if q.Status != entities.QuoteStatusOpen || q.Currency != "EUR" {
					t.Fatalf("expected open EUR quote, got %+v", q)
				}
				if !q.Price.Equal(decimal.RequireFromString("99.50")) {
					t.Fatalf("expected exact price, got %s", q.Price)
				}
				return q, nil
			},
		)

		res, err := uc.SubmitQuote(context.Background(), " rfq-1 ", supplier, submission("99.50"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.SupplierName != "Acme Milling" {
			t.Fatalf("unexpected supplier name %q", res.SupplierName)
		}
	})
}

func TestQuoteUseCase_ListQuotes(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("filtered by invisible rfq yields empty list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rfqs := mock_interfaces.NewMockIRFQRepository(ctrl)
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quotes, rfqs, nil, nil)

		rfqs.EXPECT().GetByID(gomock.Any(), "rfq-1").Return(entities.RFQ{ID: "rfq-1", UserID: buyer.UserID}, nil)

		res, err := uc.ListQuotes(context.Background(), entities.QuoteFilter{RFQID: "rfq-1"}, stranger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res == nil || len(res) != 0 {
			t.Fatalf("expected empty non-nil list, got %+v", res)
		}
	})

	t.Run("all own rfqs sorted by price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rfqs := mock_interfaces.NewMockIRFQRepository(ctrl)
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quotes, rfqs, nil, nil)

		rfqs.EXPECT().ListByUserID(gomock.Any(), buyer.UserID).Return([]entities.RFQ{
			{ID: "rfq-1", UserID: buyer.UserID},
			{ID: "rfq-2", UserID: buyer.UserID},
		}, nil)
		quotes.EXPECT().ListByRFQID(gomock.Any(), "rfq-1").Return([]entities.Quote{
			{ID: "a", Price: decimal.RequireFromString("120.00"), CreatedAt: base},
		}, nil)
		quotes.EXPECT().ListByRFQID(gomock.Any(), "rfq-2").Return([]entities.Quote{
			{ID: "b", Price: decimal.RequireFromString("99.50"), CreatedAt: base.Add(time.Minute)},
			{ID: "c", Price: decimal.RequireFromString("99.5"), CreatedAt: base},
		}, nil)

		res, err := uc.ListQuotes(context.Background(), entities.QuoteFilter{}, buyer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 3 || res[0].ID != "c" || res[1].ID != "b" || res[2].ID != "a" {
			t.Fatalf("unexpected order: %+v", res)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		rfqs := mock_interfaces.NewMockIRFQRepository(ctrl)
		uc := NewQuoteUseCase(nil, rfqs, nil, nil)

		rfqs.EXPECT().ListByUserID(gomock.Any(), buyer.UserID).Return(nil, errors.New("db"))

		_, err := uc.ListQuotes(context.Background(), entities.QuoteFilter{}, buyer)
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}
