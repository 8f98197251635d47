package handlers

import (
	"net/http"

	response "milling_aggregator/internal/adapter/http/dto/response"
	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles quote acceptance and order queries.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// AcceptQuote godoc
// @Summary      Accept a quote and create its order
// @Description  Supersedes every other open quote of the RFQ. A second acceptance on the same RFQ is a conflict.
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      201  {object}  response.OrderResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /quotes/{id}/accept [post]
func (h *OrderHandler) AcceptQuote(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	order, err := h.usecase.AcceptQuote(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromOrder(order))
}

// ListOrders godoc
// @Summary      List the caller's orders, newest first
// @Tags         orders
// @Produce      json
// @Param        status  query     string  false  "pending_payment, paid or cancelled"
// @Param        rfq_id  query     string  false  "Restrict to one RFQ"
// @Success      200  {array}   response.OrderResponse
// @Failure      400  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	filter := entities.OrderFilter{
		RFQID:  c.Query("rfq_id"),
		Status: entities.OrderStatus(c.Query("status")),
	}
	orders, err := h.usecase.ListOrders(c.Request.Context(), filter, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// GetOrder godoc
// @Summary      Get one of the caller's orders
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.OrderResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	order, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}
