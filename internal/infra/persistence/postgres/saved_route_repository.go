package postgres

import (
	"context"

	"trackwise/internal/domain/entity"
	domainerrors "trackwise/internal/domain/errors"
	"trackwise/internal/domain/repository"
	"trackwise/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// savedRouteRepository implements the repository.SavedRouteRepository interface using GORM.
type savedRouteRepository struct {
	db *gorm.DB
}

// NewSavedRouteRepository is the constructor for savedRouteRepository.
func NewSavedRouteRepository(db *gorm.DB) repository.SavedRouteRepository {
	return &savedRouteRepository{db: db}
}

// FindByID retrieves a single saved route by its unique ID.
func (repo *savedRouteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SavedRoute, error) {
	var routeM model.SavedRouteModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&routeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRouteNotFound
		}

		return nil, errors.Wrap(err, "failed to find saved route by id")
	}

	return toSavedRouteDomain(&routeM), nil
}

// ListByUserID retrieves all active saved routes belonging to a user, favorites first.
func (repo *savedRouteRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SavedRoute, error) {
	var routeModels []model.SavedRouteModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND is_active = true", userID).
		Order("is_favorite DESC, created_at DESC").
		Find(&routeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list saved routes")
	}

	routes := make([]*entity.SavedRoute, 0, len(routeModels))
	for i := range routeModels {
		routes = append(routes, toSavedRouteDomain(&routeModels[i]))
	}

	return routes, nil
}

// Create persists a new saved route.
func (repo *savedRouteRepository) Create(ctx context.Context, route *entity.SavedRoute) error {
	routeM := fromSavedRouteDomain(route)

	if err := repo.db.WithContext(ctx).Create(routeM).Error; err != nil {
		// The only foreign key on the table references users, so a
		// violation means the owner row is gone.
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create saved route")
	}

	route.ID = routeM.ID
	route.CreatedAt = routeM.CreatedAt
	route.UpdatedAt = routeM.UpdatedAt

	return nil
}

// Update modifies an existing saved route.
func (repo *savedRouteRepository) Update(ctx context.Context, route *entity.SavedRoute) error {
	routeM := fromSavedRouteDomain(route)

	if err := repo.db.WithContext(ctx).Save(routeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update saved route")
	}

	route.UpdatedAt = routeM.UpdatedAt

	return nil
}

// Delete removes a saved route.
func (repo *savedRouteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.SavedRouteModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete saved route")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRouteNotFound
	}

	return nil
}

// toSavedRouteDomain converts a GORM SavedRouteModel to a domain SavedRoute entity.
func toSavedRouteDomain(data *model.SavedRouteModel) *entity.SavedRoute {
	if data == nil {
		return nil
	}

	return &entity.SavedRoute{
		ID:          data.ID,
		UserID:      data.UserID,
		Name:        data.Name,
		Origin:      data.Origin,
		Destination: data.Destination,
		RouteTypes:  data.RouteTypes,
		Notes:       data.Notes,
		IsFavorite:  data.IsFavorite,
		IsActive:    data.IsActive,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromSavedRouteDomain converts a domain SavedRoute entity to a GORM SavedRouteModel.
func fromSavedRouteDomain(data *entity.SavedRoute) *model.SavedRouteModel {
	if data == nil {
		return nil
	}

	return &model.SavedRouteModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Name:        data.Name,
		Origin:      data.Origin,
		Destination: data.Destination,
		RouteTypes:  data.RouteTypes,
		Notes:       data.Notes,
		IsFavorite:  data.IsFavorite,
		IsActive:    data.IsActive,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
