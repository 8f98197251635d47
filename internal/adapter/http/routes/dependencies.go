package routes

import (
	"context"
	"fmt"

	"milling_aggregator/internal/adapter/persistence/memory"
	"milling_aggregator/internal/adapter/persistence/repository"
	"milling_aggregator/internal/infrastructure/auth"
	"milling_aggregator/internal/infrastructure/config"
	"milling_aggregator/internal/infrastructure/database"
	"milling_aggregator/internal/infrastructure/metrics"
	"milling_aggregator/internal/infrastructure/storage"

	"go.uber.org/zap"
)

// BuildDependencies connects the configured store and file storage backends.
func BuildDependencies(ctx context.Context, cfg *config.Config, log *zap.Logger) (Dependencies, error) {
	var deps Dependencies

	switch cfg.Store.Backend {
	case config.BackendMemory:
		log.Warn("Using in-memory store, data is lost on restart")
		deps = MemoryDependencies()
	case config.BackendDynamoDB:
		d, err := dynamoDependencies(ctx, cfg, log)
		if err != nil {
			return Dependencies{}, err
		}
		deps = d
	default:
		return Dependencies{}, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if cfg.Storage.Backend == config.BackendS3 {
		s3Storage, err := storage.NewS3ObjectStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			return Dependencies{}, err
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			return Dependencies{}, err
		}
		deps.Files = s3Storage
	}

	deps.Identity = auth.NewJWTService(cfg.JWTSecret(), cfg.JWT)
	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.New()
	}
	return deps, nil
}

// MemoryDependencies wires the in-memory store and file storage. Identity and
// metrics are left to the caller.
func MemoryDependencies() Dependencies {
	store := memory.NewStore()
	return Dependencies{
		RFQs:     memory.NewRFQRepository(store),
		Quotes:   memory.NewQuoteRepository(store),
		Orders:   memory.NewOrderRepository(store),
		Payments: memory.NewPaymentRepository(store),
		Users:    memory.NewUserRepository(store),
		Files:    storage.NewMemoryObjectStorage(),
	}
}

func dynamoDependencies(ctx context.Context, cfg *config.Config, log *zap.Logger) (Dependencies, error) {
	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return Dependencies{}, err
	}

	tables := repository.Tables{
		RFQs:     cfg.Tables.RFQs,
		Quotes:   cfg.Tables.Quotes,
		Orders:   cfg.Tables.Orders,
		Payments: cfg.Tables.Payments,
		Users:    cfg.Tables.Users,
	}
	if cfg.DynamoDB.CreateTables {
		if err := database.EnsureTables(ctx, ddb, repository.TableDefinitions(tables), log); err != nil {
			return Dependencies{}, err
		}
	}

	return Dependencies{
		RFQs:     repository.NewRFQDynamoRepository(ddb, tables),
		Quotes:   repository.NewQuoteDynamoRepository(ddb, tables),
		Orders:   repository.NewOrderDynamoRepository(ddb, tables),
		Payments: repository.NewPaymentDynamoRepository(ddb, tables),
		Users:    repository.NewUserDynamoRepository(ddb, tables),
		Files:    storage.NewMemoryObjectStorage(),
	}, nil
}
