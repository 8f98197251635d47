package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"milling_aggregator/internal/adapter/http/handlers/mocks"
	"milling_aggregator/internal/domain/entities"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestPaymentHandler_PayOrder(t *testing.T) {
	t.Run("unknown order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)
		r := newRouter(buyer)
		r.POST("/api/orders/:id/pay", h.PayOrder)

		uc.EXPECT().Pay(gomock.Any(), "o-404", buyer).Return(entities.Payment{}, entities.NewNotFoundError("order", "o-404"))

		w := serve(r, http.MethodPost, "/api/orders/o-404/pay", nil, "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("double pay", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)
		r := newRouter(buyer)
		r.POST("/api/orders/:id/pay", h.PayOrder)

		uc.EXPECT().Pay(gomock.Any(), "o-1", buyer).Return(entities.Payment{}, entities.NewConflictError("order", "o-1", "already paid"))

		w := serve(r, http.MethodPost, "/api/orders/o-1/pay", nil, "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)
		r := newRouter(buyer)
		r.POST("/api/orders/:id/pay", h.PayOrder)

		uc.EXPECT().Pay(gomock.Any(), "o-1", buyer).Return(entities.Payment{
			ID: "p-1", OrderID: "o-1", Amount: decimal.RequireFromString("99.5"), Currency: "EUR",
			Status: entities.PaymentStatusRecorded, CreatedAt: time.Now(),
		}, nil)

		w := serve(r, http.MethodPost, "/api/orders/o-1/pay", nil, "")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var res map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &res)
		if res["amount"] != "99.50" || res["currency"] != "EUR" || res["status"] != "recorded" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_ListPayments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	h := NewPaymentHandler(uc)
	r := newRouter(buyer)
	r.GET("/api/payments", h.ListPayments)

	uc.EXPECT().ListPayments(gomock.Any(), buyer).Return([]entities.Payment{{ID: "p-1"}}, nil)

	w := serve(r, http.MethodGet, "/api/payments", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
