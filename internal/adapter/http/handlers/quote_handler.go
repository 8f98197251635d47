package handlers

import (
	"net/http"

	request "milling_aggregator/internal/adapter/http/dto/request"
	response "milling_aggregator/internal/adapter/http/dto/response"
	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase"

	"github.com/gin-gonic/gin"
)

// QuoteHandler handles supplier quote submission and the buyer's quote listing.

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// SubmitQuote godoc
// @Summary      Submit a quote for an RFQ
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "RFQ ID"
// @Param        payload  body      request.QuoteRequest  true  "Quote"
// @Success      201  {object}  response.QuoteResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /rfqs/{id}/quotes [post]
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	supplier, ok := mustCaller(c)
	if !ok {
		return
	}

	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}

	quote, err := h.usecase.SubmitQuote(c.Request.Context(), c.Param("id"), supplier, payload.ToSubmission())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

// ListQuotes godoc
// @Summary      List quotes on the caller's RFQs, cheapest first
// @Tags         quotes
// @Produce      json
// @Param        rfq_id  query     string  false  "Restrict to one RFQ"
// @Success      200  {array}   response.QuoteResponse
// @Failure      401  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	filter := entities.QuoteFilter{RFQID: c.Query("rfq_id")}
	quotes, err := h.usecase.ListQuotes(c.Request.Context(), filter, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}
