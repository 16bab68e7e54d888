package impl

import (
	"context"
	"log/slog"

	deliverycontext "trackwise/internal/delivery/context"
	"trackwise/internal/domain/entity"
	domainerrors "trackwise/internal/domain/errors"
	"trackwise/internal/domain/repository"
	"trackwise/internal/domain/service"
	"trackwise/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager     repository.TransactionManager
	userRepo      repository.UserRepository
	hasher        service.PasswordHasher
	sessionIssuer service.SessionIssuer
	logger        *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	UserRepo      repository.UserRepository
	Hasher        service.PasswordHasher
	SessionIssuer service.SessionIssuer
	Logger        *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:     params.TxManager,
		userRepo:      params.UserRepo,
		hasher:        params.Hasher,
		sessionIssuer: params.SessionIssuer,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a password-backed account. Email and username uniqueness
// is enforced by the database.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		FullName:     input.FullName,
		AuthProvider: "email",
		IsActive:     true,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewUserRepository().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return domainerrors.ErrUserAlreadyExists
			}

			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Registration succeeded", slog.String("userId", user.ID.String()))

	return &usecase.RegisterOutput{User: user.Sanitize()}, nil
}

// Login authenticates a password-backed account and issues a session.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if user.PasswordHash == "" || !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domainerrors.ErrInactiveUser
	}

	token, err := srv.sessionIssuer.Issue(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session credential")
	}

	return &usecase.LoginOutput{
		SessionToken: token,
		TokenType:    "bearer",
		User:         user.Sanitize(),
	}, nil
}

// GetByEmail retrieves the account for the session subject.
func (srv *userService) GetByEmail(ctx context.Context, email string) (*entity.SanitizedUser, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return user.Sanitize(), nil
}

// UpdateProfile applies partial profile changes inside one transaction.
func (srv *userService) UpdateProfile(ctx context.Context, email string, input *usecase.UpdateProfileInput) (*entity.SanitizedUser, error) {
	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user by email")
		}

		if input.FullName != nil {
			user.FullName = *input.FullName
		}
		if input.AvatarURL != nil {
			user.AvatarURL = *input.AvatarURL
		}
		if input.Username != nil {
			user.Username = *input.Username
		}

		if err := userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return domainerrors.ErrConflict.WithDetails("username is already taken")
			}

			return errors.Wrap(err, "failed to update user")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated.Sanitize(), nil
}
