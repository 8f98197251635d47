package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "milling_aggregator/docs" // This will be auto-generated
	"milling_aggregator/internal/adapter/http/handlers"
	"milling_aggregator/internal/infrastructure/config"
	"milling_aggregator/internal/infrastructure/logger"
	"milling_aggregator/internal/infrastructure/metrics"
	"milling_aggregator/internal/usecase"
	"milling_aggregator/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	PathAPI     = "/api"
	PathMetrics = "/metrics"
	PathSwagger = "/swagger/*any"
)

const shutdownTimeout = 10 * time.Second

// Dependencies are the adapters the router wires into the use cases.
type Dependencies struct {
	RFQs     interfaces.IRFQRepository
	Quotes   interfaces.IQuoteRepository
	Orders   interfaces.IOrderRepository
	Payments interfaces.IPaymentRepository
	Users    interfaces.IUserRepository
	Files    interfaces.IFileStore
	Identity interfaces.IIdentityProvider
	// Metrics is nil when the Prometheus endpoint is disabled.
	Metrics *metrics.Registry
}

// Run will start the server and block until ctx is cancelled
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	deps, err := BuildDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           NewRouter(cfg, deps, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr), zap.String("store", cfg.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to startup the application: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the gin engine with middlewares and every route registered.
func NewRouter(cfg *config.Config, deps Dependencies, log *zap.Logger) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	setMiddlewares(router, cfg, deps, log)

	// Swagger documentation endpoint
	router.GET(PathSwagger, ginSwagger.WrapHandler(swaggerFiles.Handler))
	if deps.Metrics != nil {
		router.GET(PathMetrics, gin.WrapH(deps.Metrics.Handler()))
	}

	getRoutes(router, cfg, deps, log)
	return router
}

func getRoutes(router *gin.Engine, cfg *config.Config, deps Dependencies, log *zap.Logger) {
	var lm interfaces.ILifecycleMetrics
	if deps.Metrics != nil {
		lm = deps.Metrics
	}

	rfqUseCase := usecase.NewRFQUseCase(deps.RFQs, deps.Files, lm, log)
	quoteUseCase := usecase.NewQuoteUseCase(deps.Quotes, deps.RFQs, lm, log)
	orderUseCase := usecase.NewOrderUseCase(deps.Orders, deps.Quotes, deps.RFQs, lm, log)
	paymentUseCase := usecase.NewPaymentUseCase(deps.Payments, deps.Orders, deps.Quotes, deps.RFQs, lm, log)
	identityUseCase := usecase.NewIdentityUseCase(deps.Users, deps.Identity, log)

	api := router.Group(PathAPI)
	addPingRoutes(api)
	addAuthRoutes(api, handlers.NewAuthHandler(identityUseCase))

	// Bearer token required from here on
	protected := api.Group("")
	protected.Use(handlers.RequireIdentity(identityUseCase))
	addMeRoute(protected, handlers.NewAuthHandler(identityUseCase))
	addLifecycleRoutes(protected,
		handlers.NewRFQHandler(rfqUseCase, cfg.HTTP.MaxUploadBytes),
		handlers.NewQuoteHandler(quoteUseCase),
		handlers.NewOrderHandler(orderUseCase),
		handlers.NewPaymentHandler(paymentUseCase),
	)
}

func setMiddlewares(router *gin.Engine, cfg *config.Config, deps Dependencies, log *zap.Logger) {
	router.Use(logger.GinMiddleware(log))
	router.Use(logger.Recovery(log))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.GinMiddleware())
	}
	router.Use(CORS(cfg.HTTP.CORSAllowOrigins))
}
