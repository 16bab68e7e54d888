package main

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"os"
	"time"

	"trackwise/config"
	"trackwise/internal/delivery"
	"trackwise/internal/delivery/http"
	"trackwise/internal/delivery/http/middleware"
	"trackwise/internal/delivery/http/router/handler"
	"trackwise/internal/delivery/worker"
	"trackwise/internal/infra/auth"
	"trackwise/internal/infra/auth/apple"
	"trackwise/internal/infra/auth/google"
	"trackwise/internal/infra/cache"
	logs "trackwise/internal/infra/log"
	"trackwise/internal/infra/persistence/postgres"
	"trackwise/internal/infra/transit"
	"trackwise/internal/infra/weather"
	"trackwise/internal/usecase/impl"

	"go.uber.org/fx"
)

// upstreamTimeout bounds every outbound call to identity providers and data
// feeds.
const upstreamTimeout = 10 * time.Second

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		cache.New,
		newUpstreamHTTPClient,
	)
}

// newUpstreamHTTPClient builds the shared client for all outbound calls.
// Idle connections are released on shutdown.
func newUpstreamHTTPClient(lc fx.Lifecycle) *nethttp.Client {
	client := &nethttp.Client{Timeout: upstreamTimeout}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			client.CloseIdleConnections()

			return nil
		},
	})

	return client
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewSavedRouteRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewSessionIssuer,
			apple.NewKeySource,
			weather.New,
			transit.New,
			fx.Annotate(
				google.NewVerifier,
				fx.ResultTags(`group:"identity_verifiers"`),
			),
			fx.Annotate(
				apple.NewVerifier,
				fx.ResultTags(`group:"identity_verifiers"`),
			),
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSocialAuthService,
			impl.NewUserService,
			impl.NewRouteService,
			impl.NewWeatherService,
			impl.NewTransitService,
			impl.NewCacheAdminService,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			worker.NewCacheWarmWorker,
			func(w *worker.CacheWarmWorker) worker.Scheduler { return w },
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				func(w *worker.CacheWarmWorker) delivery.Delivery { return w },
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewRouteHandler,
			handler.NewWeatherHandler,
			handler.NewTransitHandler,
			handler.NewCacheHandler,
			handler.NewSchedulerHandler,
		),
	)
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
