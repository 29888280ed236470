package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"career-sync/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]user.User
	createErr error
	getErr    error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[uuid.UUID]user.User)}
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) CreateUser(_ context.Context, u user.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = u
	return nil
}

func (r *memUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	if r.getErr != nil {
		return user.User{}, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc := NewService(newMemUserRepo()).WithCost(bcrypt.MinCost)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: " Dev@Example.com ", Name: " Dev ", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", u.Email)
	assert.Equal(t, "Dev", u.Name)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.Register(ctx, RegisterInput{Email: "dev@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	logged, err := svc.Login(ctx, LoginInput{Email: "DEV@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	_, err = svc.Login(ctx, LoginInput{Email: "dev@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_RegisterValidation(t *testing.T) {
	svc := NewService(newMemUserRepo())
	_, err := svc.Register(context.Background(), RegisterInput{Email: "", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_RegisterStoreFailure(t *testing.T) {
	repo := newMemUserRepo()
	repo.createErr = errors.New("db down")
	_, err := NewService(repo).Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_RegisterRejectsMalformedInput(t *testing.T) {
	svc := NewService(newMemUserRepo()).WithCost(bcrypt.MinCost)
	ctx := context.Background()

	for _, email := range []string{"not-an-email", "Dev <dev@example.com>", "dev@"} {
		_, err := svc.Register(ctx, RegisterInput{Email: email, Password: "supersecret"})
		assert.ErrorIs(t, err, ErrInvalidInput, email)
	}

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: strings.Repeat("x", 73)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.c", Name: strings.Repeat("n", 121), Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_InternalErrorsKeepCause(t *testing.T) {
	boom := errors.New("db down")
	repo := newMemUserRepo()
	repo.createErr = boom

	_, err := NewService(repo).WithCost(bcrypt.MinCost).Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, boom)

	repo = newMemUserRepo()
	repo.getErr = boom
	_, err = NewService(repo).Login(context.Background(), LoginInput{Email: "a@b.c", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, boom)
}

func TestService_LoginRejectsMalformedEmailAsCredentials(t *testing.T) {
	_, err := NewService(newMemUserRepo()).Login(context.Background(), LoginInput{Email: "nope", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_WithCostIgnoresOutOfRange(t *testing.T) {
	svc := NewService(newMemUserRepo())
	assert.Equal(t, bcrypt.DefaultCost, svc.WithCost(99).cost)
	assert.Equal(t, bcrypt.MinCost, svc.WithCost(bcrypt.MinCost).cost)
}
