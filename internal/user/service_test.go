// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/flightalerts/internal/core"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestServiceCreateUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("assigns id and timestamps", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		svc.now = fixedClock(now)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

		u, err := svc.CreateUser(ctx, CreateUserRequest{
			Email: "ada@example.com",
			Name:  "Ada",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "ada@example.com", u.Email)
		assert.Nil(t, u.DeviceToken)
		assert.Equal(t, now, u.CreatedAt)
		assert.Equal(t, now, u.UpdatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("keeps device token", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		u, err := svc.CreateUser(ctx, CreateUserRequest{
			Email:       "ada@example.com",
			Name:        "Ada",
			DeviceToken: "tok",
		})
		require.NoError(t, err)
		require.NotNil(t, u.DeviceToken)
		assert.Equal(t, "tok", *u.DeviceToken)
	})

	t.Run("propagates duplicate", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, mock.Anything).
			Return(fmt.Errorf("create user: %w", core.ErrDuplicateKey))

		_, err := svc.CreateUser(ctx, CreateUserRequest{Email: "a@b.c", Name: "A"})
		assert.ErrorIs(t, err, core.ErrDuplicateKey)
	})
}

func TestServiceUpdateUser(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)

	existing := func() *User {
		token := "old-token"
		return &User{
			ID:          "u1",
			Email:       "ada@example.com",
			Name:        "Ada",
			DeviceToken: &token,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
	}

	t.Run("empty fields are left alone but updated_at advances", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		svc.now = fixedClock(later)

		repo.On("GetByID", mock.Anything, "u1").Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(u *User) bool {
			return u.Name == "Ada" &&
				*u.DeviceToken == "old-token" &&
				u.UpdatedAt.Equal(later)
		})).Return(nil)

		require.NoError(t, svc.UpdateUser(ctx, "u1", UpdateUserRequest{}))
		repo.AssertExpectations(t)
	})

	t.Run("non-empty fields overwrite", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		svc.now = fixedClock(later)

		repo.On("GetByID", mock.Anything, "u1").Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(u *User) bool {
			return u.Name == "Grace" && *u.DeviceToken == "new-token"
		})).Return(nil)

		err := svc.UpdateUser(ctx, "u1", UpdateUserRequest{
			Name:        "Grace",
			DeviceToken: "new-token",
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("updated_at never moves backwards", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		svc.now = fixedClock(created.Add(-time.Hour))

		repo.On("GetByID", mock.Anything, "u1").Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(u *User) bool {
			return u.UpdatedAt.Equal(created)
		})).Return(nil)

		require.NoError(t, svc.UpdateUser(ctx, "u1", UpdateUserRequest{Name: "X"}))
		repo.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByID", mock.Anything, "nope").
			Return(nil, fmt.Errorf("get user: %w", core.ErrNotFound))

		err := svc.UpdateUser(ctx, "nope", UpdateUserRequest{Name: "X"})
		assert.ErrorIs(t, err, core.ErrNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestServicePassThrough(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo)

	boom := errors.New("boom")
	repo.On("List", mock.Anything).Return(nil, boom)
	repo.On("Delete", mock.Anything, "u1").Return(nil)

	_, err := svc.ListUsers(ctx)
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, svc.DeleteUser(ctx, "u1"))
	repo.AssertExpectations(t)
}
