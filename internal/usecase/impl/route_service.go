package impl

import (
	"context"
	"log/slog"

	deliverycontext "trackwise/internal/delivery/context"
	"trackwise/internal/domain/entity"
	domainerrors "trackwise/internal/domain/errors"
	"trackwise/internal/domain/repository"
	"trackwise/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// routeService implements the RouteUsecase interface.
type routeService struct {
	txManager repository.TransactionManager
	routeRepo repository.SavedRouteRepository
	logger    *slog.Logger
}

// RouteServiceParams holds dependencies for routeService, injected by Fx.
type RouteServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	RouteRepo repository.SavedRouteRepository
	Logger    *slog.Logger
}

// NewRouteService is the constructor for routeService. It receives all dependencies as interfaces.
func NewRouteService(params RouteServiceParams) usecase.RouteUsecase {
	return &routeService{
		txManager: params.TxManager,
		routeRepo: params.RouteRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *routeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListRoutes returns the user's active saved routes, favorites first.
func (srv *routeService) ListRoutes(ctx context.Context, userID uuid.UUID) ([]*entity.SavedRoute, error) {
	routes, err := srv.routeRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list saved routes")
	}

	return routes, nil
}

// GetRoute returns a single saved route owned by the user. A route owned by
// someone else is reported as not found.
func (srv *routeService) GetRoute(ctx context.Context, userID, routeID uuid.UUID) (*entity.SavedRoute, error) {
	return srv.findOwnedRoute(ctx, srv.routeRepo, userID, routeID)
}

// CreateRoute saves a new route for the user.
func (srv *routeService) CreateRoute(ctx context.Context, userID uuid.UUID, input *usecase.CreateRouteInput) (*entity.SavedRoute, error) {
	route := &entity.SavedRoute{
		UserID:      userID,
		Name:        input.Name,
		Origin:      input.Origin,
		Destination: input.Destination,
		RouteTypes:  input.RouteTypes,
		Notes:       input.Notes,
		IsFavorite:  input.IsFavorite,
		IsActive:    true,
	}

	if err := srv.routeRepo.Create(ctx, route); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to create saved route")
	}

	srv.log(ctx).Info("Saved route created",
		slog.String("userId", userID.String()),
		slog.String("routeId", route.ID.String()))

	return route, nil
}

// UpdateRoute applies partial changes to a saved route owned by the user.
func (srv *routeService) UpdateRoute(ctx context.Context, userID, routeID uuid.UUID, input *usecase.UpdateRouteInput) (*entity.SavedRoute, error) {
	var updated *entity.SavedRoute

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		routeRepo := repoFactory.NewSavedRouteRepository()

		route, err := srv.findOwnedRoute(ctx, routeRepo, userID, routeID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			route.Name = *input.Name
		}
		if input.Origin != nil {
			route.Origin = *input.Origin
		}
		if input.Destination != nil {
			route.Destination = *input.Destination
		}
		if input.RouteTypes != nil {
			route.RouteTypes = *input.RouteTypes
		}
		if input.Notes != nil {
			route.Notes = *input.Notes
		}
		if input.IsFavorite != nil {
			route.IsFavorite = *input.IsFavorite
		}

		if err := routeRepo.Update(ctx, route); err != nil {
			return errors.Wrap(err, "failed to update saved route")
		}
		updated = route

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteRoute removes a saved route owned by the user.
func (srv *routeService) DeleteRoute(ctx context.Context, userID, routeID uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		routeRepo := repoFactory.NewSavedRouteRepository()

		route, err := srv.findOwnedRoute(ctx, routeRepo, userID, routeID)
		if err != nil {
			return err
		}

		if err := routeRepo.Delete(ctx, route.ID); err != nil {
			return errors.Wrap(err, "failed to delete saved route")
		}

		srv.log(ctx).Info("Saved route deleted",
			slog.String("userId", userID.String()),
			slog.String("routeId", routeID.String()))

		return nil
	})
}

// findOwnedRoute loads a route and enforces ownership without revealing
// whether a foreign route exists.
func (srv *routeService) findOwnedRoute(ctx context.Context, routeRepo repository.SavedRouteRepository, userID, routeID uuid.UUID) (*entity.SavedRoute, error) {
	route, err := routeRepo.FindByID(ctx, routeID)
	if errors.Is(err, repository.ErrRouteNotFound) {
		return nil, domainerrors.ErrRouteNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find saved route")
	}
	if route.UserID != userID || !route.IsActive {
		return nil, domainerrors.ErrRouteNotFound
	}

	return route, nil
}
