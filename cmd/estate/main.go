package main

import (
	"context"
	"log/slog"
	"os"

	"estate/config"
	"estate/internal/delivery"
	"estate/internal/delivery/api"
	"estate/internal/delivery/api/middleware"
	"estate/internal/delivery/api/router/handler"
	"estate/internal/errors"
	"estate/internal/infra/auth"
	"estate/internal/infra/chat"
	logs "estate/internal/infra/log"
	"estate/internal/infra/metrics"
	"estate/internal/infra/persistence/memory"
	"estate/internal/infra/persistence/mongo"
	"estate/internal/infra/persistence/postgres"
	"estate/internal/usecase"
	"estate/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

type bootstrapParams struct {
	fx.In
	fx.Lifecycle

	Config         *config.Config
	RegistrationUC usecase.RegistrationUsecase
	Logger         *slog.Logger
}

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	fx.New(
		fx.Supply(cfg),
		application(cfg),
		fx.Invoke(
			bootstrapAdmin,
			startServer,
		),
	).Run()
}

// application is the complete dependency graph apart from the config value and the entry points.
func application(cfg *config.Config) fx.Option {
	return fx.Options(
		injectInfra(),
		injectStorage(cfg.Storage.Driver),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
	)
}

func injectInfra() fx.Option {
	return fx.Provide(
		context.Background,
		logs.New,
		fx.Annotate(
			prometheus.NewRegistry,
			fx.As(new(prometheus.Registerer)),
			fx.As(new(prometheus.Gatherer)),
		),
		metrics.New,
	)
}

func injectStorage(driver string) fx.Option {
	switch driver {
	case config.StorageDriverPostgres:
		return fx.Provide(
			postgres.New,
			postgres.NewTransactionManager,
			postgres.NewPrincipalRepository,
			postgres.NewSellerRepository,
			postgres.NewCustomerRepository,
			postgres.NewListingRepository,
			postgres.NewConversationRepository,
		)
	case config.StorageDriverMongo:
		return fx.Provide(
			mongo.New,
			mongo.NewTransactionManager,
			mongo.NewPrincipalRepository,
			mongo.NewSellerRepository,
			mongo.NewCustomerRepository,
			mongo.NewListingRepository,
			mongo.NewConversationRepository,
		)
	case config.StorageDriverMemory:
		return fx.Provide(
			memory.NewStore,
			memory.NewTransactionManager,
			memory.NewPrincipalRepository,
			memory.NewSellerRepository,
			memory.NewCustomerRepository,
			memory.NewListingRepository,
			memory.NewConversationRepository,
		)
	default:
		return fx.Error(errors.Errorf("unsupported storage driver %q", driver))
	}
}

func injectService() fx.Option {
	return fx.Provide(
		auth.NewBcryptHasher,
		auth.NewJWTService,
		auth.NewRedisClient,
		auth.NewRevocationList,
		chat.NewCompleter,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewRegistrationService,
		impl.NewAuthService,
		impl.NewPrincipalService,
		impl.NewSellerService,
		impl.NewCustomerService,
		impl.NewListingService,
		impl.NewConversationService,
	)
}

func injectMiddleware() fx.Option {
	return fx.Provide(
		middleware.NewAuthMiddleware,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewHealthHandler,
		handler.NewAuthHandler,
		handler.NewUserHandler,
		handler.NewSellerHandler,
		handler.NewCustomerHandler,
		handler.NewPropertyHandler,
		handler.NewChatHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		api.NewEcho,
		fx.Annotate(
			api.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

// bootstrapAdmin seeds the configured administrator once the store is reachable.
func bootstrapAdmin(params bootstrapParams) {
	if !params.Config.Bootstrap.Enabled() {
		return
	}

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			b := params.Config.Bootstrap
			created, err := params.RegistrationUC.EnsureAdmin(ctx, b.AdminEmail, b.AdminPassword, b.AdminDisplayName)
			if err != nil {
				return errors.Wrap(err, "failed to bootstrap administrator")
			}
			if created {
				params.Logger.Info("Administrator created", slog.String("email", b.AdminEmail))
			}

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
