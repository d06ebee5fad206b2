package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"courtslot/internal/auth"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestService_Register(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, "New User", "new@example.com", mock.Anything, "user").
		Return(&User{ID: 1, Name: "New User", Email: "new@example.com", Role: "user"}, nil)

	svc := NewService(repo, "test-secret")
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	repo.AssertExpectations(t)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

	svc := NewService(repo, "test-secret")
	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestService_Login(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	repo := new(MockUserRepo)
	repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(&User{
		ID:           2,
		Email:        "ana@example.com",
		PasswordHash: hash,
		Role:         "user",
	}, nil)

	svc := NewService(repo, "test-secret")

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ana@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.User.ID)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, sql.ErrNoRows)

	svc := NewService(repo, "test-secret")
	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
