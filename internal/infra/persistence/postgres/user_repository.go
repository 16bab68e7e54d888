// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "email = ?", email)
}

// FindByUsername retrieves a single user by their username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.findOne(ctx, "username = ?", username)
}

// FindByProviderID retrieves the user whose linked identity for the given
// provider matches the provider-scoped user id.
func (repo *userRepository) FindByProviderID(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.User, error) {
	switch provider {
	case entity.ProviderTypeGoogle:
		return repo.findOne(ctx, "google_id = ?", providerUserID)
	case entity.ProviderTypeApple:
		return repo.findOne(ctx, "apple_id = ?", providerUserID)
	default:
		return nil, errors.Errorf("unknown provider %q", provider)
	}
}

func (repo *userRepository) findOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).Where(query, args...).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity. Unique-constraint violations surface
// as repository.ErrDuplicateKey so the social auth flow can retry
// resolution after losing a linking race.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:            data.ID,
		Email:         data.Email,
		Username:      data.Username,
		PasswordHash:  derefString(data.PasswordHash),
		FullName:      data.FullName,
		AvatarURL:     data.AvatarURL,
		GoogleID:      derefString(data.GoogleID),
		AppleID:       derefString(data.AppleID),
		AuthProvider:  data.AuthProvider,
		EmailVerified: data.EmailVerified,
		IsActive:      data.IsActive,
		IsSuperuser:   data.IsSuperuser,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
// Empty provider ids and password hashes are stored as NULL so the unique
// indexes on those columns never collide on the empty string.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:            data.ID,
		Email:         data.Email,
		Username:      data.Username,
		PasswordHash:  nilIfEmpty(data.PasswordHash),
		FullName:      data.FullName,
		AvatarURL:     data.AvatarURL,
		GoogleID:      nilIfEmpty(data.GoogleID),
		AppleID:       nilIfEmpty(data.AppleID),
		AuthProvider:  data.AuthProvider,
		EmailVerified: data.EmailVerified,
		IsActive:      data.IsActive,
		IsSuperuser:   data.IsSuperuser,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
