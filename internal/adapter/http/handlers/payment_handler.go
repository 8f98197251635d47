package handlers

import (
	"net/http"

	response "milling_aggregator/internal/adapter/http/dto/response"
	"milling_aggregator/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PaymentHandler records order payments. No gateway is involved: paying is a
// recorded status transition.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// PayOrder godoc
// @Summary      Pay an order
// @Description  Records a payment for the accepted quote's price and moves the order to paid.
// @Tags         payments
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      201  {object}  response.PaymentResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id}/pay [post]
func (h *PaymentHandler) PayOrder(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	payment, err := h.usecase.Pay(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromPayment(payment))
}

// ListPayments godoc
// @Summary      List the caller's payments, newest first
// @Tags         payments
// @Produce      json
// @Success      200  {array}   response.PaymentResponse
// @Security     Bearer
// @Router       /payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	payments, err := h.usecase.ListPayments(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}
