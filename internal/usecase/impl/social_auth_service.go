// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "trackwise/internal/delivery/context"
	"trackwise/internal/domain/entity"
	domainerrors "trackwise/internal/domain/errors"
	"trackwise/internal/domain/repository"
	"trackwise/internal/domain/service"
	"trackwise/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maxUsernameProbes caps the incrementing-suffix search for a free username.
// Past the cap a random suffix guarantees termination.
const maxUsernameProbes = 20

// socialAuthService implements the AuthUsecase interface. It dispatches the
// raw token to the matching provider verifier, resolves the verified identity
// to a local account inside one transaction, and issues the session
// credential only after that transaction has committed.
type socialAuthService struct {
	txManager     repository.TransactionManager
	verifiers     map[entity.ProviderType]service.IdentityVerifier
	sessionIssuer service.SessionIssuer
	logger        *slog.Logger
}

// SocialAuthServiceParams holds dependencies for socialAuthService, injected by Fx.
type SocialAuthServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	Verifiers     []service.IdentityVerifier `group:"identity_verifiers"`
	SessionIssuer service.SessionIssuer
	Logger        *slog.Logger
}

// NewSocialAuthService is the constructor for socialAuthService. It receives all dependencies as interfaces.
func NewSocialAuthService(params SocialAuthServiceParams) usecase.AuthUsecase {
	verifiers := make(map[entity.ProviderType]service.IdentityVerifier, len(params.Verifiers))
	for _, verifier := range params.Verifiers {
		verifiers[verifier.Provider()] = verifier
	}

	return &socialAuthService{
		txManager:     params.TxManager,
		verifiers:     verifiers,
		sessionIssuer: params.SessionIssuer,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *socialAuthService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SocialLogin orchestrates the complete social authentication flow.
func (srv *socialAuthService) SocialLogin(ctx context.Context, input *usecase.SocialLoginInput) (*usecase.SocialLoginOutput, error) {
	provider := entity.ProviderType(input.Provider)
	verifier, ok := srv.verifiers[provider]
	if !ok {
		return nil, domainerrors.ErrUnsupportedProvider.WithDetails(
			fmt.Sprintf("provider %q is not supported", input.Provider))
	}

	srv.log(ctx).Info("Starting social login", slog.String("provider", provider.String()))

	identity, err := verifier.Verify(ctx, input.IDToken, input.Nonce)
	if err != nil {
		return nil, err
	}

	user, isNew, err := srv.linkIdentity(ctx, identity)
	if errors.Is(err, domainerrors.ErrLinkConflict) {
		// A racing request linked the same identity first; the row exists
		// now, so one re-resolution finds it.
		srv.log(ctx).Warn("Concurrent identity link detected, retrying resolution",
			slog.String("provider", identity.Provider.String()))
		user, isNew, err = srv.linkIdentity(ctx, identity)
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, domainerrors.ErrInactiveUser
	}

	token, err := srv.sessionIssuer.Issue(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session credential")
	}

	srv.log(ctx).Info("Social login succeeded",
		slog.String("provider", identity.Provider.String()),
		slog.String("userId", user.ID.String()),
		slog.Bool("isNewUser", isNew))

	return &usecase.SocialLoginOutput{
		SessionToken: token,
		TokenType:    "bearer",
		User:         user.Sanitize(),
		IsNewUser:    isNew,
	}, nil
}

// linkIdentity resolves a verified provider identity to exactly one account:
// match on the provider id, then on the email, then create. The whole
// resolution runs in one transaction; a uniqueness violation from a racing
// request surfaces as ErrLinkConflict so the caller can re-resolve.
func (srv *socialAuthService) linkIdentity(ctx context.Context, identity *entity.ProviderIdentity) (*entity.User, bool, error) {
	var (
		user  *entity.User
		isNew bool
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		existing, err := userRepo.FindByProviderID(ctx, identity.Provider, identity.ProviderUserID)
		if err == nil {
			user = existing

			return srv.refreshLinkedUser(ctx, userRepo, existing, identity)
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to find user by provider id")
		}

		if identity.Email != "" {
			existing, err := userRepo.FindByEmail(ctx, identity.Email)
			if err == nil {
				user = existing

				return srv.linkProviderToUser(ctx, userRepo, existing, identity)
			}
			if !errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(err, "failed to find user by email")
			}
		}

		created, err := srv.createSocialUser(ctx, userRepo, identity)
		if err != nil {
			return err
		}
		user = created
		isNew = true

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return user, isNew, nil
}

// refreshLinkedUser backfills profile claims on an account already linked to
// this identity. Existing values are never overwritten.
func (srv *socialAuthService) refreshLinkedUser(ctx context.Context, userRepo repository.UserRepository, user *entity.User, identity *entity.ProviderIdentity) error {
	applyProviderClaims(user, identity)

	if err := userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to refresh linked user")
	}

	return nil
}

// linkProviderToUser attaches the provider identity to an account that was
// found by email, for instance a password account signing in with Google for
// the first time.
func (srv *socialAuthService) linkProviderToUser(ctx context.Context, userRepo repository.UserRepository, user *entity.User, identity *entity.ProviderIdentity) error {
	setProviderID(user, identity)
	applyProviderClaims(user, identity)
	user.AuthProvider = identity.Provider.String()

	if err := userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return domainerrors.ErrLinkConflict
		}

		return errors.Wrap(err, "failed to link provider to user")
	}

	return nil
}

// createSocialUser registers a brand-new account for the identity. The email
// is synthesized from the provider id when the provider withheld it.
func (srv *socialAuthService) createSocialUser(ctx context.Context, userRepo repository.UserRepository, identity *entity.ProviderIdentity) (*entity.User, error) {
	username, err := srv.pickUsername(ctx, userRepo, identity)
	if err != nil {
		return nil, err
	}

	email := identity.Email
	if email == "" {
		email = fmt.Sprintf("%s@%s.local", identity.ProviderUserID, identity.Provider)
	}

	user := &entity.User{
		Email:         email,
		Username:      username,
		FullName:      identity.FullName,
		AvatarURL:     identity.AvatarURL,
		AuthProvider:  identity.Provider.String(),
		EmailVerified: identity.EmailVerified,
		IsActive:      true,
	}
	setProviderID(user, identity)

	if err := userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrLinkConflict
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	return user, nil
}

// pickUsername derives a handle from the email's local part, or from the
// provider id when the identity carries no email, and probes incrementing
// suffixes until a free one is found.
func (srv *socialAuthService) pickUsername(ctx context.Context, userRepo repository.UserRepository, identity *entity.ProviderIdentity) (string, error) {
	var base string
	if identity.Email != "" {
		base = strings.SplitN(identity.Email, "@", 2)[0]
	} else {
		shortID := identity.ProviderUserID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		base = fmt.Sprintf("%s_%s", identity.Provider, shortID)
	}

	candidate := base
	for probe := 1; probe <= maxUsernameProbes; probe++ {
		_, err := userRepo.FindByUsername(ctx, candidate)
		if errors.Is(err, repository.ErrUserNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", errors.Wrap(err, "failed to probe username")
		}

		candidate = fmt.Sprintf("%s%d", base, probe)
	}

	// Probe budget exhausted; a random suffix guarantees termination.
	return fmt.Sprintf("%s_%s", base, uuid.NewString()[:8]), nil
}

// applyProviderClaims backfills profile fields from the verified identity
// without overwriting anything the user already has. A verified-email
// assertion is sticky and never downgraded.
func applyProviderClaims(user *entity.User, identity *entity.ProviderIdentity) {
	if identity.FullName != "" && user.FullName == "" {
		user.FullName = identity.FullName
	}
	if identity.AvatarURL != "" && user.AvatarURL == "" {
		user.AvatarURL = identity.AvatarURL
	}
	if identity.EmailVerified {
		user.EmailVerified = true
	}
}

// setProviderID stores the provider-scoped subject on its provider's column.
func setProviderID(user *entity.User, identity *entity.ProviderIdentity) {
	switch identity.Provider {
	case entity.ProviderTypeGoogle:
		user.GoogleID = identity.ProviderUserID
	case entity.ProviderTypeApple:
		user.AppleID = identity.ProviderUserID
	}
}
