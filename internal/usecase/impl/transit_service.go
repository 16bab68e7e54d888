package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"trackwise/config"
	deliverycontext "trackwise/internal/delivery/context"
	"trackwise/internal/domain/entity"
	"trackwise/internal/domain/service"
	"trackwise/internal/usecase"

	"go.uber.org/fx"
)

const defaultTransitCacheTTL = 30 * time.Second

// transitService implements the TransitUsecase interface with a
// read-through cache in front of the upstream feed.
type transitService struct {
	client   service.TransitClient
	cache    service.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// TransitServiceParams holds dependencies for transitService, injected by Fx.
type TransitServiceParams struct {
	fx.In

	Client service.TransitClient
	Cache  service.Cache
	Config *config.Config
	Logger *slog.Logger
}

// NewTransitService is the constructor for transitService.
func NewTransitService(params TransitServiceParams) usecase.TransitUsecase {
	cacheTTL := defaultTransitCacheTTL
	if params.Config.Transit != nil && params.Config.Transit.CacheTTL > 0 {
		cacheTTL = params.Config.Transit.CacheTTL
	}

	return &transitService{
		client:   params.Client,
		cache:    params.Cache,
		cacheTTL: cacheTTL,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *transitService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StopArrivals returns predicted arrivals for a stop, serving from cache
// when a fresh entry exists. Arrival predictions age quickly, so the TTL is
// short. Cache failures degrade to an upstream fetch.
func (srv *transitService) StopArrivals(ctx context.Context, stopID, routeID string) ([]*entity.StopArrival, error) {
	key := fmt.Sprintf("transit:%s:%s", stopID, routeID)

	if cached, err := srv.cache.Get(ctx, key); err != nil {
		srv.log(ctx).Warn("Transit cache read failed", slog.Any("error", err))
	} else if cached != nil {
		var arrivals []*entity.StopArrival
		if err := json.Unmarshal(cached, &arrivals); err == nil {
			return arrivals, nil
		}
		srv.log(ctx).Warn("Discarding undecodable transit cache entry", slog.String("key", key))
	}

	arrivals, err := srv.client.StopArrivals(ctx, stopID, routeID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(arrivals); err == nil {
		if err := srv.cache.Set(ctx, key, encoded, srv.cacheTTL); err != nil {
			srv.log(ctx).Warn("Transit cache write failed", slog.Any("error", err))
		}
	}

	return arrivals, nil
}
