package routes

import (
	"milling_aggregator/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathAuth     = "/auth"
	PathRFQs     = "/rfqs"
	PathQuotes   = "/quotes"
	PathOrders   = "/orders"
	PathPayments = "/payments"
)

func addAuthRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}
}

func addMeRoute(rg *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	rg.GET("/me", authHandler.Me)
}

func addLifecycleRoutes(
	rg *gin.RouterGroup,
	rfqHandler *handlers.RFQHandler,
	quoteHandler *handlers.QuoteHandler,
	orderHandler *handlers.OrderHandler,
	paymentHandler *handlers.PaymentHandler,
) {
	rfqs := rg.Group(PathRFQs)
	{
		rfqs.POST("", rfqHandler.CreateRFQ)
		rfqs.GET("", rfqHandler.ListRFQs)
		rfqs.GET("/:id", rfqHandler.GetRFQ)
		rfqs.POST("/:id/quotes", quoteHandler.SubmitQuote)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.POST("/:id/accept", orderHandler.AcceptQuote)
	}

	orders := rg.Group(PathOrders)
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/pay", paymentHandler.PayOrder)
	}

	rg.GET(PathPayments, paymentHandler.ListPayments)
}
