package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"trackwise/internal/domain/entity"
	"trackwise/internal/domain/repository"
	"trackwise/internal/domain/service"

	"github.com/google/uuid"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeUserRepo is an in-memory UserRepository enforcing the same unique
// constraints as the real schema (email, username, provider ids).
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User

	// failNextCreate simulates losing a race: the insert fails with a
	// duplicate-key error, and when racingWinner is set that user is
	// inserted first, as if a concurrent request committed it.
	failNextCreate bool
	racingWinner   *entity.User

	// alwaysFailCreate makes every insert conflict, modeling pathological
	// contention where the winner row never becomes visible.
	alwaysFailCreate bool

	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) insert(user *entity.User) *entity.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[copied.ID] = &copied

	return &copied
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user

		return &copied, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByProviderID(_ context.Context, provider entity.ProviderType, providerUserID string) (*entity.User, error) {
	for _, user := range r.users {
		switch provider {
		case entity.ProviderTypeGoogle:
			if user.GoogleID == providerUserID {
				copied := *user

				return &copied, nil
			}
		case entity.ProviderTypeApple:
			if user.AppleID == providerUserID {
				copied := *user

				return &copied, nil
			}
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) hasDuplicate(candidate *entity.User) bool {
	for _, user := range r.users {
		if user.ID == candidate.ID {
			continue
		}
		if user.Email == candidate.Email || user.Username == candidate.Username {
			return true
		}
		if candidate.GoogleID != "" && user.GoogleID == candidate.GoogleID {
			return true
		}
		if candidate.AppleID != "" && user.AppleID == candidate.AppleID {
			return true
		}
	}

	return false
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.createCalls++

	if r.alwaysFailCreate {
		return repository.ErrDuplicateKey
	}

	if r.failNextCreate {
		r.failNextCreate = false
		if r.racingWinner != nil {
			r.insert(r.racingWinner)
			r.racingWinner = nil
		}

		return repository.ErrDuplicateKey
	}

	if r.hasDuplicate(user) {
		return repository.ErrDuplicateKey
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.insert(user)

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	if r.hasDuplicate(user) {
		return repository.ErrDuplicateKey
	}

	user.UpdatedAt = time.Now()
	r.insert(user)

	return nil
}

// fakeRouteRepo is an in-memory SavedRouteRepository.
type fakeRouteRepo struct {
	routes    map[uuid.UUID]*entity.SavedRoute
	createErr error
}

func newFakeRouteRepo() *fakeRouteRepo {
	return &fakeRouteRepo{routes: make(map[uuid.UUID]*entity.SavedRoute)}
}

func (r *fakeRouteRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.SavedRoute, error) {
	if route, ok := r.routes[id]; ok {
		copied := *route

		return &copied, nil
	}

	return nil, repository.ErrRouteNotFound
}

func (r *fakeRouteRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*entity.SavedRoute, error) {
	var favorites, rest []*entity.SavedRoute
	for _, route := range r.routes {
		if route.UserID != userID || !route.IsActive {
			continue
		}
		copied := *route
		if copied.IsFavorite {
			favorites = append(favorites, &copied)
		} else {
			rest = append(rest, &copied)
		}
	}

	return append(favorites, rest...), nil
}

func (r *fakeRouteRepo) Create(_ context.Context, route *entity.SavedRoute) error {
	if r.createErr != nil {
		return r.createErr
	}
	route.ID = uuid.New()
	route.CreatedAt = time.Now()
	route.UpdatedAt = route.CreatedAt
	copied := *route
	r.routes[copied.ID] = &copied

	return nil
}

func (r *fakeRouteRepo) Update(_ context.Context, route *entity.SavedRoute) error {
	if _, ok := r.routes[route.ID]; !ok {
		return repository.ErrRouteNotFound
	}
	copied := *route
	r.routes[copied.ID] = &copied

	return nil
}

func (r *fakeRouteRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.routes[id]; !ok {
		return repository.ErrRouteNotFound
	}
	delete(r.routes, id)

	return nil
}

// fakeTxManager runs the transactional function directly against the fakes.
type fakeTxManager struct {
	userRepo  *fakeUserRepo
	routeRepo *fakeRouteRepo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeRepoFactory{userRepo: m.userRepo, routeRepo: m.routeRepo})
}

type fakeRepoFactory struct {
	userRepo  *fakeUserRepo
	routeRepo *fakeRouteRepo
}

func (f *fakeRepoFactory) NewUserRepository() repository.UserRepository {
	return f.userRepo
}

func (f *fakeRepoFactory) NewSavedRouteRepository() repository.SavedRouteRepository {
	return f.routeRepo
}

// stubVerifier returns a canned identity or error for a fixed provider.
type stubVerifier struct {
	provider entity.ProviderType
	identity *entity.ProviderIdentity
	err      error
}

func (v *stubVerifier) Provider() entity.ProviderType {
	return v.provider
}

func (v *stubVerifier) Verify(context.Context, string, string) (*entity.ProviderIdentity, error) {
	if v.err != nil {
		return nil, v.err
	}
	copied := *v.identity

	return &copied, nil
}

// stubSessionIssuer issues a deterministic credential derived from the email.
type stubSessionIssuer struct{}

func (stubSessionIssuer) Issue(user *entity.User) (string, error) {
	return fmt.Sprintf("session-for-%s", user.Email), nil
}

func (stubSessionIssuer) Validate(token string) (string, error) {
	return token, nil
}

func (stubSessionIssuer) TTL() time.Duration {
	return time.Hour
}

// fakeHasher avoids bcrypt costs in tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

var _ service.PasswordHasher = fakeHasher{}
var _ service.SessionIssuer = stubSessionIssuer{}
var _ service.IdentityVerifier = (*stubVerifier)(nil)
var _ repository.UserRepository = (*fakeUserRepo)(nil)
var _ repository.SavedRouteRepository = (*fakeRouteRepo)(nil)
var _ repository.TransactionManager = (*fakeTxManager)(nil)
