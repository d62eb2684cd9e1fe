package auth

import (
	"context"
	"sync"
	"testing"

	"careerquest/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]user.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]user.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := newMemUsers()
	svc := NewService(repo).WithCost(bcrypt.MinCost)
	ctx := context.Background()

	u, err := svc.Register(ctx, Credentials{Email: "  Salma@Example.MA ", Password: "secret123"}, false)
	require.NoError(t, err)
	assert.Equal(t, "salma@example.ma", u.Email)
	assert.Empty(t, u.PasswordHash)
	assert.False(t, u.IsStaff)

	_, err = svc.Register(ctx, Credentials{Email: "salma@example.ma", Password: "secret123"}, false)
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	got, err := svc.Authenticate(ctx, Credentials{Email: "SALMA@example.ma", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, Credentials{Email: "salma@example.ma", Password: "wrong1234"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, Credentials{Email: "nobody@example.ma", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newMemUsers()).WithCost(bcrypt.MinCost)
	ctx := context.Background()

	_, err := svc.Register(ctx, Credentials{Email: "not-an-email", Password: "secret123"}, false)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, Credentials{Email: "a@b.ma", Password: "short1"}, false)
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Register(ctx, Credentials{Email: "a@b.ma", Password: "lettersonly"}, false)
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]bool{
		"user@example.com": true,
		"@example.com":     false,
		"user@":            false,
		"user@localhost":   false,
		"us er@example.ma": false,
	}
	for in, want := range cases {
		_, ok := NormalizeEmail(in)
		assert.Equal(t, want, ok, in)
	}
}
